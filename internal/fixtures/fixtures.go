// Package fixtures loads the demo data set the desk starts with.
package fixtures

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

//go:embed seed.yaml
var seedYAML []byte

// Seed is a full set of records for the in-memory repositories
type Seed struct {
	Clients  []*domain.Client
	Quotes   []*domain.Quote
	Invoices []*domain.Invoice
	Jobs     []*domain.Job
}

type seedFile struct {
	Clients  []clientRow  `yaml:"clients"`
	Quotes   []quoteRow   `yaml:"quotes"`
	Invoices []invoiceRow `yaml:"invoices"`
	Jobs     []jobRow     `yaml:"jobs"`
}

type clientRow struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Email         string  `yaml:"email"`
	Phone         string  `yaml:"phone"`
	Company       string  `yaml:"company"`
	Address       string  `yaml:"address"`
	City          string  `yaml:"city"`
	State         string  `yaml:"state"`
	ZipCode       string  `yaml:"zip_code"`
	TotalOrders   int     `yaml:"total_orders"`
	TotalSpent    float64 `yaml:"total_spent"`
	LastOrderDate string  `yaml:"last_order_date"`
	Status        string  `yaml:"status"`
	Notes         string  `yaml:"notes"`
}

type itemRow struct {
	ID          string  `yaml:"id"`
	Description string  `yaml:"description"`
	Quantity    int     `yaml:"quantity"`
	UnitPrice   float64 `yaml:"unit_price"`
}

type quoteRow struct {
	ID           string    `yaml:"id"`
	Number       string    `yaml:"number"`
	ClientID     string    `yaml:"client_id"`
	Customer     string    `yaml:"customer"`
	Description  string    `yaml:"description"`
	Amount       float64   `yaml:"amount"`
	Status       string    `yaml:"status"`
	Archived     bool      `yaml:"archived"`
	ArchivedDate string    `yaml:"archived_date"`
	CreatedDate  string    `yaml:"created_date"`
	ExpiryDate   string    `yaml:"expiry_date"`
	Items        []itemRow `yaml:"items"`
}

type invoiceRow struct {
	ID           string    `yaml:"id"`
	Number       string    `yaml:"number"`
	ClientID     string    `yaml:"client_id"`
	QuoteID      string    `yaml:"quote_id"`
	Customer     string    `yaml:"customer"`
	Email        string    `yaml:"email"`
	Description  string    `yaml:"description"`
	Amount       float64   `yaml:"amount"`
	PaidAmount   float64   `yaml:"paid_amount"`
	Status       string    `yaml:"status"`
	Archived     bool      `yaml:"archived"`
	ArchivedDate string    `yaml:"archived_date"`
	IssueDate    string    `yaml:"issue_date"`
	DueDate      string    `yaml:"due_date"`
	PaymentDate  string    `yaml:"payment_date"`
	Items        []itemRow `yaml:"items"`
}

type jobRow struct {
	ID             string         `yaml:"id"`
	Title          string         `yaml:"title"`
	Client         string         `yaml:"client"`
	Description    string         `yaml:"description"`
	Status         string         `yaml:"status"`
	Date           string         `yaml:"date"`
	EstimatedHours float64        `yaml:"estimated_hours"`
	Sizes          map[string]int `yaml:"sizes"`
	Notes          string         `yaml:"notes"`
}

// Default returns the embedded demo data
func Default() (*Seed, error) {
	return parse(seedYAML)
}

// LoadFile reads a seed file from disk
func LoadFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a seed from YAML
func Load(r io.Reader) (*Seed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	seed := &Seed{}
	for _, row := range f.Clients {
		c, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("client %s: %w", row.ID, err)
		}
		seed.Clients = append(seed.Clients, c)
	}
	for _, row := range f.Quotes {
		q, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("quote %s: %w", row.ID, err)
		}
		seed.Quotes = append(seed.Quotes, q)
	}
	for _, row := range f.Invoices {
		inv, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", row.ID, err)
		}
		seed.Invoices = append(seed.Invoices, inv)
	}
	for _, row := range f.Jobs {
		j, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", row.ID, err)
		}
		seed.Jobs = append(seed.Jobs, j)
	}
	return seed, nil
}

func (r clientRow) toDomain() (*domain.Client, error) {
	status, err := domain.ParseClientStatus(r.Status)
	if err != nil {
		return nil, err
	}
	last, err := parseOptionalDate(r.LastOrderDate)
	if err != nil {
		return nil, err
	}
	return &domain.Client{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Company:       r.Company,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		TotalOrders:   r.TotalOrders,
		TotalSpent:    decimal.NewFromFloat(r.TotalSpent),
		LastOrderDate: last,
		Status:        status,
		Notes:         r.Notes,
	}, nil
}

func (r quoteRow) toDomain() (*domain.Quote, error) {
	status, err := domain.ParseQuoteStatus(r.Status)
	if err != nil {
		return nil, err
	}
	created, err := parseDate(r.CreatedDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseDate(r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	archived, err := parseOptionalDate(r.ArchivedDate)
	if err != nil {
		return nil, err
	}
	return &domain.Quote{
		ID:           r.ID,
		Number:       r.Number,
		ClientID:     r.ClientID,
		Customer:     r.Customer,
		Description:  r.Description,
		Amount:       decimal.NewFromFloat(r.Amount),
		Status:       status,
		Archived:     r.Archived,
		ArchivedDate: archived,
		CreatedDate:  created,
		ExpiryDate:   expiry,
		Items:        toItems(r.Items),
	}, nil
}

func (r invoiceRow) toDomain() (*domain.Invoice, error) {
	status, err := domain.ParseInvoiceStatus(r.Status)
	if err != nil {
		return nil, err
	}
	issued, err := parseDate(r.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return nil, err
	}
	paidOn, err := parseOptionalDate(r.PaymentDate)
	if err != nil {
		return nil, err
	}
	archived, err := parseOptionalDate(r.ArchivedDate)
	if err != nil {
		return nil, err
	}
	return &domain.Invoice{
		ID:           r.ID,
		Number:       r.Number,
		ClientID:     r.ClientID,
		QuoteID:      r.QuoteID,
		Customer:     r.Customer,
		Email:        r.Email,
		Description:  r.Description,
		Amount:       decimal.NewFromFloat(r.Amount),
		PaidAmount:   decimal.NewFromFloat(r.PaidAmount),
		Status:       status,
		Archived:     r.Archived,
		ArchivedDate: archived,
		IssueDate:    issued,
		DueDate:      due,
		PaymentDate:  paidOn,
		Items:        toItems(r.Items),
	}, nil
}

func (r jobRow) toDomain() (*domain.Job, error) {
	status, err := domain.ParseJobStatus(r.Status)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	j := &domain.Job{
		ID:             r.ID,
		Title:          r.Title,
		Client:         r.Client,
		Description:    r.Description,
		Date:           date,
		Status:         status,
		EstimatedHours: r.EstimatedHours,
		Notes:          r.Notes,
	}
	for size, qty := range r.Sizes {
		j.SetSize(size, qty)
	}
	return j, nil
}

func toItems(rows []itemRow) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(rows))
	for _, it := range rows {
		items = append(items, domain.NewLineItem(it.ID, it.Description, it.Quantity, decimal.NewFromFloat(it.UnitPrice)))
	}
	return items
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
