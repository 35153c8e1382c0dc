package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"materiaux-scraper/config"
	"materiaux-scraper/models"
	"materiaux-scraper/scraper"
	"materiaux-scraper/services"
	"materiaux-scraper/storage"
	"materiaux-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)
	run := config.NewRunContext(cfg.OutputDir, time.Now())

	logger.Info("=== Matériaux Tunisie — scraping de prix ===")
	logger.Info("Config — concurrency: %d | rate: %dms | retries: %d | output: %s",
		cfg.MaxConcurrency, cfg.RateLimitMs, cfg.MaxRetries, cfg.OutputDir)

	sites, err := config.LoadSites(cfg.SitesPath)
	if err != nil {
		logger.Error("Failed to load site configs: %v", err)
		os.Exit(1)
	}
	logger.Info("%d site configs loaded from %s", len(sites), cfg.SitesPath)

	var seen scraper.SeenStore
	if cfg.RedisEnabled {
		redisStore, err := storage.NewRedisSeenStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis unavailable, cross-run dedup disabled: %v", err)
		} else {
			defer redisStore.Close()
			seen = redisStore
			logger.Info("Redis seen-store connected (%s, TTL %dh)", cfg.RedisAddr, cfg.SeenTTLHours)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(cfg, sites, logger, seen)
	defer s.Close()

	rawListings, report := s.Run(ctx)
	if len(rawListings) == 0 {
		logger.Error("No listings were scraped. Exiting.")
		writeReport(run, report, logger)
		os.Exit(1)
	}

	s.Enrich(ctx, rawListings)

	logger.Info("Scraped %d raw listings — writing raw dumps...", len(rawListings))
	rawCSV := run.Path("raw", "listings", "csv")
	if err := storage.WriteRawListingsCSV(rawCSV, rawListings); err != nil {
		logger.Error("Raw CSV write failed: %v", err)
	}
	if err := storage.WriteJSON(run.Path("raw", "listings", "json"), rawListings); err != nil {
		logger.Error("Raw JSON write failed: %v", err)
	}

	cleaner := services.NewCleaner(logger)
	materials, materialStats := cleaner.CleanMaterials(rawListings)
	properties, propertyStats := cleaner.CleanProperties(rawListings)

	materialsCSV := run.Path("clean", "materials", "csv")
	if len(materials) > 0 {
		if err := storage.WriteMaterialsCSV(materialsCSV, materials); err != nil {
			logger.Error("Materials CSV write failed: %v", err)
		}
		if err := storage.WriteJSON(run.Path("clean", "materials", "json"), materials); err != nil {
			logger.Error("Materials JSON write failed: %v", err)
		}
	}
	if len(properties) > 0 {
		if err := storage.WritePropertiesCSV(run.Path("clean", "properties", "csv"), properties); err != nil {
			logger.Error("Properties CSV write failed: %v", err)
		}
		if err := storage.WriteJSON(run.Path("clean", "properties", "json"), properties); err != nil {
			logger.Error("Properties JSON write failed: %v", err)
		}
	}

	if cfg.PostgresEnabled {
		persist(cfg, logger, materials, properties)
	}

	comparator := services.NewComparator(logger)
	comparisons := comparator.Compare(materials)
	if len(comparisons) > 0 {
		if err := storage.WriteJSON(run.Path("reports", "comparaison_prix", "json"), comparisons); err != nil {
			logger.Error("Comparison JSON write failed: %v", err)
		}
		savingsPath := run.Path("reports", "rapport_economies", "txt")
		if err := os.WriteFile(savingsPath, []byte(comparator.SavingsReport(comparisons)), 0644); err != nil {
			logger.Error("Savings report write failed: %v", err)
		} else {
			logger.Info("Savings report → %s", savingsPath)
		}
	}

	insightSvc := services.NewInsightService(logger)
	insights := insightSvc.Generate(materials)
	insightSvc.Print(insights)
	if err := storage.WriteJSON(run.Path("reports", "statistiques", "json"), insights); err != nil {
		logger.Error("Insights JSON write failed: %v", err)
	}

	writeReport(run, report, logger)

	logger.Info("Cleaning — materials: %d kept / %d in, properties: %d kept / %d in",
		materialStats.Kept, materialStats.Input, propertyStats.Kept, propertyStats.Input)
	fmt.Printf("  Done. Raw → %s | Clean materials → %s\n\n", rawCSV, materialsCSV)
}

// persist writes cleaned records to PostgreSQL. DB trouble is logged, never
// fatal: flat files are the primary output.
func persist(cfg *config.Config, logger *utils.Logger, materials []*models.Material, properties []*models.Property) {
	pg, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("PostgreSQL unavailable, skipping DB persistence: %v", err)
		return
	}
	defer pg.Close()

	if err := pg.WriteMaterials(materials); err != nil {
		logger.Error("PostgreSQL materials write failed: %v", err)
	} else {
		logger.Info("%d materials stored in PostgreSQL", len(materials))
	}
	if err := pg.WriteProperties(properties); err != nil {
		logger.Error("PostgreSQL properties write failed: %v", err)
	} else if len(properties) > 0 {
		logger.Info("%d properties stored in PostgreSQL", len(properties))
	}
}

func writeReport(run *config.RunContext, report *models.RunReport, logger *utils.Logger) {
	for _, site := range report.Sites {
		logger.Info("  %-24s pages %d (failed %d) — listings %d found, %d kept, %d dupes, %d field misses",
			site.Site, site.PagesFetched, site.PagesFailed,
			site.ListingsFound, site.ListingsKept, site.DuplicatesSkipped, site.FieldMisses)
	}
	if err := storage.WriteJSON(run.Path("reports", "run_report", "json"), report); err != nil {
		logger.Error("Run report write failed: %v", err)
	}
}
