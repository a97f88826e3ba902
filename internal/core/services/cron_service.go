package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService re-runs the spreadsheet import on a schedule, keeping
// the store in sync with externally refreshed data files
type CronService struct {
	cron    *cron.Cron
	ingest  *IngestService
	spec    string
	timeout time.Duration
}

// NewCronService creates a new cron service
func NewCronService(ingest *IngestService, spec string) *CronService {
	return &CronService{
		cron:    cron.New(),
		ingest:  ingest,
		spec:    spec,
		timeout: 10 * time.Minute,
	}
}

// Start schedules the import job and launches the cron loop
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runImport); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 CronService started [schedule: %s]", s.spec)
	return nil
}

// Stop stops the cron loop; running jobs finish on their own
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runImport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.ingest.Run(ctx); err != nil {
		log.Printf("❌ Scheduled import failed: %v", err)
	}
}
