package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"creditline/internal/adapters/persistence/models"
	"creditline/internal/adapters/persistence/repositories"
	"creditline/internal/core/domain"
)

// Spreadsheet file names expected in the data directory
const (
	CustomerDataFile = "customer_data.xlsx"
	LoanDataFile     = "loan_data.xlsx"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"2/1/2006",
}

// IngestService imports customer and loan records from spreadsheets
// into the store. Rows are upserted by their spreadsheet ids, so the
// import can be re-run safely.
type IngestService struct {
	customerRepo repositories.CustomerRepository
	loanRepo     repositories.LoanRepository
	dataDir      string
}

// NewIngestService creates a new ingest service
func NewIngestService(customerRepo repositories.CustomerRepository, loanRepo repositories.LoanRepository, dataDir string) *IngestService {
	return &IngestService{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		dataDir:      dataDir,
	}
}

// IngestSummary reports what a single import run did
type IngestSummary struct {
	BatchID           string `json:"batch_id"`
	CustomersImported int    `json:"customers_imported"`
	LoansImported     int    `json:"loans_imported"`
	RowsSkipped       int    `json:"rows_skipped"`
}

// Run imports customers first, then loans, so loan rows can resolve
// their owners. Each run is tagged with a batch id for the logs.
func (s *IngestService) Run(ctx context.Context) (*IngestSummary, error) {
	summary := &IngestSummary{BatchID: uuid.NewString()}

	log.Printf("📥 Ingest batch %s started [dir: %s]", summary.BatchID, s.dataDir)

	if err := s.importCustomers(ctx, summary); err != nil {
		return nil, fmt.Errorf("customer import: %w", err)
	}
	if err := s.importLoans(ctx, summary); err != nil {
		return nil, fmt.Errorf("loan import: %w", err)
	}

	log.Printf("✅ Ingest batch %s done: %d customers, %d loans, %d rows skipped",
		summary.BatchID, summary.CustomersImported, summary.LoansImported, summary.RowsSkipped)
	return summary, nil
}

func (s *IngestService) importCustomers(ctx context.Context, summary *IngestSummary) error {
	rows, header, err := s.readSheet(CustomerDataFile)
	if err != nil {
		return err
	}

	for i, row := range rows {
		customer, err := parseCustomerRow(header, row)
		if err != nil {
			summary.RowsSkipped++
			log.Printf("⚠️ Ingest %s: customer row %d skipped: %v", summary.BatchID, i+2, err)
			continue
		}

		if err := s.customerRepo.Upsert(ctx, customer); err != nil {
			summary.RowsSkipped++
			log.Printf("⚠️ Ingest %s: customer %d upsert failed: %v", summary.BatchID, customer.CustomerID, err)
			continue
		}
		summary.CustomersImported++
	}
	return nil
}

func (s *IngestService) importLoans(ctx context.Context, summary *IngestSummary) error {
	rows, header, err := s.readSheet(LoanDataFile)
	if err != nil {
		return err
	}

	for i, row := range rows {
		loan, err := parseLoanRow(header, row)
		if err != nil {
			summary.RowsSkipped++
			log.Printf("⚠️ Ingest %s: loan row %d skipped: %v", summary.BatchID, i+2, err)
			continue
		}

		// Loans of unknown customers are skipped, not failed.
		if _, err := s.customerRepo.GetByID(ctx, loan.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				summary.RowsSkipped++
				log.Printf("⚠️ Ingest %s: loan %d skipped: customer %d not found",
					summary.BatchID, loan.LoanID, loan.CustomerID)
				continue
			}
			return err
		}

		if err := s.loanRepo.Upsert(ctx, loan); err != nil {
			summary.RowsSkipped++
			log.Printf("⚠️ Ingest %s: loan %d upsert failed: %v", summary.BatchID, loan.LoanID, err)
			continue
		}
		summary.LoansImported++
	}
	return nil
}

// readSheet returns the data rows and normalized header of the first
// sheet in the workbook
func (s *IngestService) readSheet(name string) ([][]string, map[string]int, error) {
	f, err := excelize.OpenFile(filepath.Join(s.dataDir, name))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty sheet", name)
	}

	return rows[1:], normalizeHeader(rows[0]), nil
}

// normalizeHeader maps lowercased, underscored column names to indexes
func normalizeHeader(cells []string) map[string]int {
	header := make(map[string]int, len(cells))
	for i, cell := range cells {
		key := strings.ToLower(strings.TrimSpace(cell))
		key = strings.ReplaceAll(key, " ", "_")
		header[key] = i
	}
	return header
}

func parseCustomerRow(header map[string]int, row []string) (*models.Customer, error) {
	id, err := cellUint(header, row, "customer_id")
	if err != nil {
		return nil, err
	}

	salary, err := cellDecimal(header, row, "monthly_salary")
	if err != nil {
		return nil, err
	}

	// Recompute the limit from policy when the column is absent.
	limit, err := cellDecimal(header, row, "approved_limit")
	if err != nil {
		limit = domain.RoundToNearestLakh(salary.Mul(thirtySix))
	}

	debt, err := cellDecimal(header, row, "current_debt")
	if err != nil {
		debt = decimal.Zero
	}

	age, _ := cellInt(header, row, "age")

	return &models.Customer{
		CustomerID:    id,
		FirstName:     cellString(header, row, "first_name"),
		LastName:      cellString(header, row, "last_name"),
		Age:           age,
		PhoneNumber:   cellString(header, row, "phone_number"),
		MonthlySalary: salary,
		ApprovedLimit: limit,
		CurrentDebt:   debt,
	}, nil
}

func parseLoanRow(header map[string]int, row []string) (*models.Loan, error) {
	loanID, err := cellUint(header, row, "loan_id")
	if err != nil {
		return nil, err
	}
	customerID, err := cellUint(header, row, "customer_id")
	if err != nil {
		return nil, err
	}

	amount, err := cellDecimal(header, row, "loan_amount")
	if err != nil {
		return nil, err
	}
	tenure, err := cellInt(header, row, "tenure")
	if err != nil {
		return nil, err
	}
	rate, err := cellDecimal(header, row, "interest_rate")
	if err != nil {
		return nil, err
	}

	// Legacy sheets label the installment "monthly_payment".
	installment, err := cellDecimal(header, row, "monthly_installment")
	if err != nil {
		installment, err = cellDecimal(header, row, "monthly_payment")
		if err != nil {
			return nil, err
		}
	}

	paidOnTime, err := cellInt(header, row, "emis_paid_on_time")
	if err != nil {
		return nil, err
	}

	start, err := cellDate(header, row, "date_of_approval")
	if err != nil {
		start, err = cellDate(header, row, "start_date")
		if err != nil {
			return nil, err
		}
	}

	loan := &models.Loan{
		LoanID:             loanID,
		CustomerID:         customerID,
		LoanAmount:         amount,
		Tenure:             tenure,
		InterestRate:       rate,
		MonthlyInstallment: installment,
		EMIsPaidOnTime:     paidOnTime,
		StartDate:          start,
	}

	if end, err := cellDate(header, row, "end_date"); err == nil {
		loan.EndDate = &end
	}
	return loan, nil
}

func cellString(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellDecimal(header map[string]int, row []string, key string) (decimal.Decimal, error) {
	raw := cellString(header, row, key)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("column %q missing or empty", key)
	}
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
}

func cellInt(header map[string]int, row []string, key string) (int, error) {
	raw := cellString(header, row, key)
	if raw == "" {
		return 0, fmt.Errorf("column %q missing or empty", key)
	}
	return strconv.Atoi(raw)
}

func cellUint(header map[string]int, row []string, key string) (uint, error) {
	v, err := cellInt(header, row, key)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("column %q: negative id %d", key, v)
	}
	return uint(v), nil
}

func cellDate(header map[string]int, row []string, key string) (time.Time, error) {
	raw := cellString(header, row, key)
	if raw == "" {
		return time.Time{}, fmt.Errorf("column %q missing or empty", key)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column %q: unparseable date %q", key, raw)
}
