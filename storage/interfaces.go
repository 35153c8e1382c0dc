package storage

import "materiaux-scraper/models"

// MaterialWriter is the interface any material storage backend must satisfy.
type MaterialWriter interface {
	WriteMaterials(materials []*models.Material) error
	Close() error
}

// PropertyWriter is the interface any real-estate storage backend must satisfy.
type PropertyWriter interface {
	WriteProperties(properties []*models.Property) error
	Close() error
}

var (
	_ MaterialWriter = (*PostgresWriter)(nil)
	_ PropertyWriter = (*PostgresWriter)(nil)
)
