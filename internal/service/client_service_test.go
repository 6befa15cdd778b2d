package service

import (
	"context"
	"testing"

	"github.com/andy/printdesk/internal/domain"
	"github.com/andy/printdesk/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientService(r testRepos) ClientService {
	return NewClientService(r.clients, r.quotes, r.invoices)
}

func TestCreateClient_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestClientService(seededRepos(t))

	c, err := svc.CreateClient(ctx, ClientInput{Name: "  Ana Ruiz ", Email: "ana@print.co", Company: "Ruiz Design"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana Ruiz", c.Name)
	assert.Equal(t, domain.ClientStatusProspect, c.Status)
	assert.Zero(t, c.TotalOrders)
	assert.True(t, c.TotalSpent.IsZero())
	assert.Nil(t, c.LastOrderDate)

	list, err := svc.ListClients(ctx, filter.ClientParams{SearchText: "ruiz"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCreateClient_Invalid(t *testing.T) {
	svc := newTestClientService(seededRepos(t))

	_, err := svc.CreateClient(context.Background(), ClientInput{Name: "", Email: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.ErrorContains(t, err, "name is required")
	assert.ErrorContains(t, err, "email must be a valid email")
}

func TestUpdateClient_KeepsHistory(t *testing.T) {
	ctx := context.Background()
	svc := newTestClientService(seededRepos(t))

	c, err := svc.UpdateClient(ctx, "1", ClientInput{Name: "John Smith", Email: "john@techcorp.com", Company: "TechCorp Global"})
	require.NoError(t, err)
	assert.Equal(t, "TechCorp Global", c.Company)
	assert.Equal(t, 8, c.TotalOrders)
	assert.Equal(t, domain.ClientStatusActive, c.Status, "empty status keeps the current one")

	_, err = svc.UpdateClient(ctx, "1", ClientInput{Name: "John Smith", Email: ""})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	again, err := svc.GetClient(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "john@techcorp.com", again.Email, "failed update is not saved")
}

func TestGetActivity(t *testing.T) {
	ctx := context.Background()
	svc := newTestClientService(seededRepos(t))

	act, err := svc.GetActivity(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, act.QuoteCount)
	assert.Len(t, act.RecentQuotes, 3)
	assert.Equal(t, 1, act.InvoiceCount)
	assert.Equal(t, "531.25", act.AverageOrder.StringFixed(2))

	prospect, err := svc.GetActivity(ctx, "6")
	require.NoError(t, err)
	assert.True(t, prospect.AverageOrder.IsZero())
	assert.Len(t, prospect.RecentQuotes, 1)
	assert.Empty(t, prospect.RecentInvoices)
}

func TestListClients_Selected(t *testing.T) {
	svc := newTestClientService(seededRepos(t))

	list, err := svc.ListClients(context.Background(), filter.ClientParams{SelectedID: "4", SearchText: "zzz"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Emily Davis", list[0].Name)

	list, err = svc.ListClients(context.Background(), filter.ClientParams{Status: string(domain.ClientStatusProspect)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "6", list[0].ID)
}
