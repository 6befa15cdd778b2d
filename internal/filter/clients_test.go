package filter

import (
	"testing"

	"github.com/andy/printdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleClients() []*domain.Client {
	return []*domain.Client{
		{ID: "1", Name: "John Smith", Email: "john@techcorp.com", Phone: "(555) 123-4567", Company: "Tech Corp", Status: domain.ClientStatusActive},
		{ID: "2", Name: "Sarah Johnson", Email: "wedding@smithfamily.com", Phone: "(555) 234-5678", Company: "Smith Family", Status: domain.ClientStatusActive},
		{ID: "6", Name: "Lisa Anderson", Email: "lisa@startup.com", Phone: "(555) 678-9012", Company: "Startup Inc", Status: domain.ClientStatusProspect},
		{ID: "7", Name: "Old Customer", Email: "old@example.com", Phone: "555-0000", Status: domain.ClientStatusInactive},
	}
}

func clientIDs(cs []*domain.Client) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestClients_Search(t *testing.T) {
	cs := sampleClients()

	assert.Equal(t, []string{"1", "2"}, clientIDs(Clients(cs, ClientParams{SearchText: "SMITH"})), "name, email and company")
	assert.Equal(t, []string{"6"}, clientIDs(Clients(cs, ClientParams{SearchText: "startup"})))
	assert.Equal(t, []string{"2"}, clientIDs(Clients(cs, ClientParams{SearchText: "234-56"})), "phone")
	assert.Empty(t, Clients(cs, ClientParams{SearchText: "nobody"}))
	assert.Empty(t, Clients(cs, ClientParams{SearchText: "  "}), "whitespace is matched as typed")
	assert.Equal(t, []string{"2"}, clientIDs(Clients(cs, ClientParams{SearchText: "smith "})))
}

func TestClients_Status(t *testing.T) {
	cs := sampleClients()
	assert.Equal(t, []string{"6"}, clientIDs(Clients(cs, ClientParams{Status: "prospect"})))
	assert.Len(t, Clients(cs, ClientParams{Status: StatusAll}), 4)
	assert.Equal(t, []string{"1"}, clientIDs(Clients(cs, ClientParams{Status: "active", SearchText: "tech"})))
}

func TestClients_SelectedClientShownAlone(t *testing.T) {
	cs := sampleClients()

	got := Clients(cs, ClientParams{SelectedID: "7", SearchText: "smith", Status: "active"})
	assert.Equal(t, []string{"7"}, clientIDs(got))

	assert.Empty(t, Clients(cs, ClientParams{SelectedID: "missing"}))
}
