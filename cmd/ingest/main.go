package main

import (
	"context"
	"flag"
	"log"
	"time"

	"creditline/internal/adapters/persistence/models"
	"creditline/internal/adapters/persistence/repositories"
	"creditline/internal/config"
	"creditline/internal/core/services"
)

// One-shot spreadsheet import: loads customer_data.xlsx and
// loan_data.xlsx from the data directory into the database.
func main() {
	dataDir := flag.String("data-dir", "", "directory holding the spreadsheet files (defaults to INGEST_DATA_DIR)")
	timeout := flag.Duration("timeout", 10*time.Minute, "import timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	dir := *dataDir
	if dir == "" {
		dir = cfg.Ingest.DataDir
	}
	if dir == "" {
		log.Fatal("❌ No data directory: set -data-dir or INGEST_DATA_DIR")
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}

	ingestService := services.NewIngestService(
		repositories.NewCustomerRepository(db),
		repositories.NewLoanRepository(db),
		dir,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	summary, err := ingestService.Run(ctx)
	if err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}

	log.Printf("✅ Import finished: %d customers, %d loans, %d rows skipped",
		summary.CustomersImported, summary.LoansImported, summary.RowsSkipped)
}
