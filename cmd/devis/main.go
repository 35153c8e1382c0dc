// Command devis generates a price quote from a cleaned materials catalog
// produced by the scraper.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"materiaux-scraper/config"
	"materiaux-scraper/models"
	"materiaux-scraper/services"
	"materiaux-scraper/storage"
	"materiaux-scraper/utils"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "materials CSV written by the scraper (required)")
		requestPath = flag.String("request", "", "quote request JSON; omit for the built-in sample")
		outputDir   = flag.String("out", "./output/devis", "directory for the generated quote")
		discount    = flag.Float64("remise", 0, "discount percentage applied before VAT")
	)
	flag.Parse()

	logger := utils.NewLogger(false)

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "usage: devis -catalog <materials.csv> [-request <request.json>] [-out <dir>] [-remise <pct>]")
		os.Exit(2)
	}

	catalog, err := storage.ReadMaterialsCSV(*catalogPath)
	if err != nil {
		logger.Error("Failed to load catalog: %v", err)
		os.Exit(1)
	}
	logger.Info("%d materials loaded from %s", len(catalog), *catalogPath)

	req, err := loadRequest(*requestPath)
	if err != nil {
		logger.Error("Failed to load quote request: %v", err)
		os.Exit(1)
	}

	opts := services.DefaultDevisOptions()
	opts.DiscountPct = *discount

	run := config.NewRunContext(*outputDir, time.Now())
	generator := services.NewDevisGenerator(catalog, logger)
	devis := generator.Generate(req, opts, run.StartedAt)

	if len(devis.Lines) == 0 {
		logger.Error("No requested material could be priced from the catalog. Exiting.")
		os.Exit(1)
	}

	textPath := filepath.Join(*outputDir, fmt.Sprintf("devis_%s.txt", devis.Number))
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Error("Failed to create output dir: %v", err)
		os.Exit(1)
	}
	if err := os.WriteFile(textPath, []byte(services.FormatText(devis)), 0644); err != nil {
		logger.Error("Failed to write quote: %v", err)
		os.Exit(1)
	}
	jsonPath := filepath.Join(*outputDir, fmt.Sprintf("devis_%s.json", devis.Number))
	if err := storage.WriteJSON(jsonPath, devis); err != nil {
		logger.Error("Failed to write quote JSON: %v", err)
		os.Exit(1)
	}

	logger.Info("Devis %s — %d lines, total %.2f TND TTC", devis.Number, len(devis.Lines), devis.TotalTTC)
	if len(devis.Missing) > 0 {
		logger.Warn("%d materials not found in catalog: %v", len(devis.Missing), devis.Missing)
	}
	fmt.Printf("  Devis → %s (JSON: %s)\n", textPath, jsonPath)
}

// loadRequest reads the quote request from disk, or returns a sample
// request when no path is given.
func loadRequest(path string) (*models.DevisRequest, error) {
	if path == "" {
		return sampleRequest(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devis: read request %q: %w", path, err)
	}
	var req models.DevisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("devis: parse request %q: %w", path, err)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("devis: request %q has no items", path)
	}
	return &req, nil
}

func sampleRequest() *models.DevisRequest {
	return &models.DevisRequest{
		Client: models.Client{
			Name:    "Entreprise de Construction Tunis",
			Address: "Avenue Habib Bourguiba, Tunis 1000",
			Phone:   "+216 71 000 000",
		},
		Project: models.Project{
			Name:        "Construction villa R+1",
			Description: "Gros œuvre et finitions",
			Location:    "Hammamet",
		},
		Items: []models.DevisItem{
			{Material: "ciment", Quantity: 100},
			{Material: "fer", Quantity: 50},
			{Material: "brique", Quantity: 500},
			{Material: "carrelage", Quantity: 120},
			{Material: "peinture", Quantity: 20},
		},
	}
}
