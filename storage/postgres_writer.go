package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"materiaux-scraper/models"
)

// PostgresWriter persists cleaned materials and properties to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS materials (
			id          SERIAL PRIMARY KEY,
			name        TEXT          NOT NULL,
			price       NUMERIC(12,3),
			price_raw   TEXT          NOT NULL DEFAULT '',
			unit        VARCHAR(20)   NOT NULL DEFAULT 'pièce',
			category    VARCHAR(80)   NOT NULL,
			price_range VARCHAR(30)   NOT NULL DEFAULT '',
			description TEXT          NOT NULL DEFAULT '',
			image_url   TEXT          NOT NULL DEFAULT '',
			source_site VARCHAR(80)   NOT NULL,
			source_url  TEXT          NOT NULL,
			scraped_at  TIMESTAMPTZ   NOT NULL,
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			UNIQUE (name, source_site)
		);

		CREATE INDEX IF NOT EXISTS idx_materials_category ON materials(category);
		CREATE INDEX IF NOT EXISTS idx_materials_price    ON materials(price);
		CREATE INDEX IF NOT EXISTS idx_materials_site     ON materials(source_site);

		CREATE TABLE IF NOT EXISTS properties (
			id            SERIAL PRIMARY KEY,
			title         TEXT          NOT NULL,
			price         NUMERIC(14,3),
			price_raw     TEXT          NOT NULL DEFAULT '',
			location      VARCHAR(120)  NOT NULL DEFAULT '',
			bedrooms      INT           NOT NULL DEFAULT 0,
			bathrooms     INT           NOT NULL DEFAULT 0,
			area          NUMERIC(10,2),
			property_type VARCHAR(40)   NOT NULL DEFAULT '',
			features      TEXT          NOT NULL DEFAULT '',
			url           TEXT          NOT NULL DEFAULT '',
			source_site   VARCHAR(80)   NOT NULL,
			scraped_at    TIMESTAMPTZ   NOT NULL,
			created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			UNIQUE (title, source_site)
		);

		CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location);
		CREATE INDEX IF NOT EXISTS idx_properties_price    ON properties(price);
		CREATE INDEX IF NOT EXISTS idx_properties_type     ON properties(property_type);
	`)
	return err
}

// Clear deletes all stored materials and properties.
func (pw *PostgresWriter) Clear() error {
	if _, err := pw.db.Exec("DELETE FROM materials"); err != nil {
		return fmt.Errorf("postgres: clear materials: %w", err)
	}
	if _, err := pw.db.Exec("DELETE FROM properties"); err != nil {
		return fmt.Errorf("postgres: clear properties: %w", err)
	}
	return nil
}

// WriteMaterials batch-inserts the cleaned material catalog.
func (pw *PostgresWriter) WriteMaterials(materials []*models.Material) error {
	const batchSize = 50
	for i := 0; i < len(materials); i += batchSize {
		end := i + batchSize
		if end > len(materials) {
			end = len(materials)
		}
		if err := pw.insertMaterialBatch(materials[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertMaterialBatch(batch []*models.Material) error {
	const cols = 11
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, m := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			m.Name, nullableFloat(m.Price), m.PriceRaw, m.Unit, m.Category,
			m.PriceRange, m.Description, m.ImageURL, m.SourceSite, m.SourceURL, m.ScrapedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO materials (name, price, price_raw, unit, category,
			price_range, description, image_url, source_site, source_url, scraped_at)
		VALUES %s
		ON CONFLICT (name, source_site) DO UPDATE SET
			price = EXCLUDED.price,
			price_raw = EXCLUDED.price_raw,
			price_range = EXCLUDED.price_range,
			scraped_at = EXCLUDED.scraped_at
	`, strings.Join(valueStrings, ","))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert materials: %w", err)
	}
	return nil
}

// WriteProperties batch-inserts the cleaned real-estate records.
func (pw *PostgresWriter) WriteProperties(properties []*models.Property) error {
	const batchSize = 50
	for i := 0; i < len(properties); i += batchSize {
		end := i + batchSize
		if end > len(properties) {
			end = len(properties)
		}
		if err := pw.insertPropertyBatch(properties[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertPropertyBatch(batch []*models.Property) error {
	const cols = 12
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, p := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			p.Title, nullableFloat(p.Price), p.PriceRaw, p.Location, p.Bedrooms,
			p.Bathrooms, nullableFloat(p.Area), p.PropertyType, p.Features,
			p.URL, p.SourceSite, p.ScrapedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (title, price, price_raw, location, bedrooms,
			bathrooms, area, property_type, features, url, source_site, scraped_at)
		VALUES %s
		ON CONFLICT (title, source_site) DO UPDATE SET
			price = EXCLUDED.price,
			price_raw = EXCLUDED.price_raw,
			scraped_at = EXCLUDED.scraped_at
	`, strings.Join(valueStrings, ","))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert properties: %w", err)
	}
	return nil
}

// FetchAllMaterials retrieves the stored catalog, ordered by category then
// name — used by the comparison and insight services when running off the
// database instead of a fresh scrape.
func (pw *PostgresWriter) FetchAllMaterials() ([]*models.Material, error) {
	rows, err := pw.db.Query(`
		SELECT id, name, price, price_raw, unit, category, price_range,
		       description, image_url, source_site, source_url, scraped_at
		FROM materials
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		m := &models.Material{}
		var price sql.NullFloat64
		if err := rows.Scan(
			&m.ID, &m.Name, &price, &m.PriceRaw, &m.Unit, &m.Category,
			&m.PriceRange, &m.Description, &m.ImageURL, &m.SourceSite,
			&m.SourceURL, &m.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan material: %w", err)
		}
		if price.Valid {
			v := price.Float64
			m.Price = &v
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullableFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
