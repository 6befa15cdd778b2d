package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/andy/printdesk/internal/fixtures"
	"github.com/andy/printdesk/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testRepos struct {
	clients  *repository.ClientRepo
	quotes   *repository.QuoteRepo
	invoices *repository.InvoiceRepo
	jobs     *repository.JobRepo
}

func seededRepos(t *testing.T) testRepos {
	t.Helper()
	seed, err := fixtures.Default()
	require.NoError(t, err)
	return testRepos{
		clients:  repository.NewClientRepo(seed.Clients),
		quotes:   repository.NewQuoteRepo(seed.Quotes),
		invoices: repository.NewInvoiceRepo(seed.Invoices),
		jobs:     repository.NewJobRepo(seed.Jobs),
	}
}

func newTestInvoiceService(r testRepos) InvoiceService {
	return NewInvoiceService(r.invoices, r.quotes, r.clients, InvoiceOptions{Now: fixedClock})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mock implementations
type failingInvoiceRepo struct {
	repository.InvoiceRepository
	err error
}

func (m *failingInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return nil, m.err
}

func (m *failingInvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	return nil, m.err
}

func TestCreateInvoice_Standalone(t *testing.T) {
	ctx := context.Background()
	r := seededRepos(t)
	svc := newTestInvoiceService(r)

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{
		Customer:    "Maria Restaurant",
		Email:       "maria@restaurant.com",
		Description: "Aprons",
		Quantity:    20,
		UnitPrice:   dec("10"),
		Deposit:     dec("100"),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV004", inv.Number)
	assert.Equal(t, "223", inv.Amount.String())
	assert.Equal(t, domain.InvoiceStatusPartial, inv.Status)
	assert.Equal(t, "123.00", inv.Balance().StringFixed(2))
	assert.Equal(t, fixedNow.AddDate(0, 0, 14), inv.DueDate)
	assert.NotEmpty(t, inv.ID)

	stored, err := r.invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Number, stored.Number)
}

func TestCreateInvoice_ClientDefaults(t *testing.T) {
	ctx := context.Background()
	r := seededRepos(t)
	svc := newTestInvoiceService(r)

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{
		ClientID:    "5",
		Description: "Menu boards",
		Quantity:    2,
		UnitPrice:   dec("40"),
		DueDays:     30,
	})
	require.NoError(t, err)
	assert.Equal(t, "Café Delight", inv.Customer)
	assert.Equal(t, "orders@cafedelight.com", inv.Email)
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), inv.DueDate)
}

func TestCreateInvoice_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestInvoiceService(seededRepos(t))

	_, err := svc.CreateInvoice(ctx, InvoiceInput{Customer: "X", Email: "not-an-email", Description: "d", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.ErrorContains(t, err, "email must be a valid email")

	_, err = svc.CreateInvoice(ctx, InvoiceInput{Customer: "X", Email: "x@y.com", Description: "d", Quantity: 0})
	assert.ErrorContains(t, err, "quantity must be at least 1")

	_, err = svc.CreateInvoice(ctx, InvoiceInput{ClientID: "404", Description: "d", Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateInvoice_FromQuote(t *testing.T) {
	ctx := context.Background()
	r := seededRepos(t)
	svc := newTestInvoiceService(r)

	// Q004 is approved and has no invoice yet
	draft := DraftFromQuote(mustQuote(t, r, "4"))
	draft.Email = "admin@financeltd.com"
	inv, err := svc.CreateInvoice(ctx, *draft)
	require.NoError(t, err)
	assert.Equal(t, "4", inv.QuoteID)
	assert.Equal(t, "4", inv.ClientID)
	assert.Equal(t, "Emily Davis", inv.Customer)

	found, err := svc.FindByQuote(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, found.ID)

	// a second invoice for the same quote is refused
	_, err = svc.CreateInvoice(ctx, *draft)
	assert.ErrorIs(t, err, ErrAlreadyInvoiced)

	// Q001 is pending
	pending := DraftFromQuote(mustQuote(t, r, "1"))
	pending.Email = "wedding@smithfamily.com"
	_, err = svc.CreateInvoice(ctx, *pending)
	assert.ErrorIs(t, err, ErrQuoteNotApproved)
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	r := seededRepos(t)
	svc := newTestInvoiceService(r)

	inv, err := svc.RecordPayment(ctx, "1", dec("500"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPartial, inv.Status)
	assert.Equal(t, "500", inv.PaidAmount.String(), "payment replaces the paid amount")
	require.NotNil(t, inv.PaymentDate)
	assert.Equal(t, fixedNow, *inv.PaymentDate)

	inv, err = svc.RecordPayment(ctx, "1", dec("696.88"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.Balance().IsZero())

	_, err = svc.RecordPayment(ctx, "1", dec("10"))
	assert.ErrorIs(t, err, ErrPaymentNotAllowed)

	_, err = svc.RecordPayment(ctx, "1", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestArchiveInvoice_Gated(t *testing.T) {
	ctx := context.Background()
	r := seededRepos(t)
	svc := newTestInvoiceService(r)

	sent, err := svc.CreateInvoice(ctx, InvoiceInput{Customer: "A", Email: "a@b.com", Description: "d", Quantity: 1, UnitPrice: dec("5")})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, sent.ID, domain.InvoiceStatusSent)
	require.NoError(t, err)

	_, err = svc.Archive(ctx, sent.ID)
	assert.ErrorIs(t, err, ErrNotArchivable)
	unchanged, err := svc.GetInvoice(ctx, sent.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.Archived, "failed archive leaves state untouched")

	archived, err := svc.Archive(ctx, "2")
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	require.NotNil(t, archived.ArchivedDate)

	restored, err := svc.Restore(ctx, "2")
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Nil(t, restored.ArchivedDate)
}

func TestListInvoices(t *testing.T) {
	ctx := context.Background()
	r := seededRepos(t)
	svc := newTestInvoiceService(r)

	_, err := svc.Archive(ctx, "3")
	require.NoError(t, err)

	res, err := svc.ListInvoices(ctx, filter.Params{Dates: filter.Last30Days})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 3, res.Counts.Total)
	assert.Equal(t, 1, res.Counts.Archived)
	assert.Equal(t, 2, res.Counts.Visible)

	res, err = svc.ListInvoices(ctx, filter.Params{View: filter.ViewArchived})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "INV003", res.Items[0].Number)

	res, err = svc.ListInvoices(ctx, filter.Params{Status: string(domain.InvoiceStatusPartial), View: filter.ViewAll})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "INV001", res.Items[0].Number)
}

func TestUpdateInvoiceStatus_Unknown(t *testing.T) {
	svc := newTestInvoiceService(seededRepos(t))
	_, err := svc.UpdateStatus(context.Background(), "1", domain.InvoiceStatus("void"))
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestReminder(t *testing.T) {
	ctx := context.Background()
	svc := newTestInvoiceService(seededRepos(t))

	text, err := svc.Reminder(ctx, "1")
	require.NoError(t, err)
	assert.Contains(t, text, "INV001")
	assert.Contains(t, text, "$396.88")

	_, err = svc.Reminder(ctx, "2")
	assert.Error(t, err, "paid invoices need no reminder")
}

func TestInvoiceService_RepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	r := seededRepos(t)
	svc := NewInvoiceService(&failingInvoiceRepo{err: boom}, r.quotes, r.clients, InvoiceOptions{Now: fixedClock})

	_, err := svc.GetInvoice(context.Background(), "1")
	assert.ErrorIs(t, err, boom)

	_, err = svc.ListInvoices(context.Background(), filter.Params{})
	assert.ErrorIs(t, err, boom)

	_, err = svc.RecordPayment(context.Background(), "1", dec("1"))
	assert.ErrorIs(t, err, boom)
}

func mustQuote(t *testing.T, r testRepos, id string) *domain.Quote {
	t.Helper()
	q, err := r.quotes.GetByID(context.Background(), id)
	require.NoError(t, err)
	return q
}
