package filter

import (
	"strings"

	"github.com/andy/printdesk/internal/domain"
)

type ClientParams struct {
	SearchText string
	Status     string
	SelectedID string
}

// Clients filters the client directory. A selected client is shown alone,
// ignoring search and status. Name, email and company match
// case-insensitively; phone matches as typed. The search text is used
// untrimmed.
func Clients(clients []*domain.Client, p ClientParams) []*domain.Client {
	needle := p.SearchText
	lower := strings.ToLower(needle)

	out := make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		if p.SelectedID != "" {
			if c.ID == p.SelectedID {
				out = append(out, c)
			}
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), lower) &&
			!strings.Contains(strings.ToLower(c.Email), lower) &&
			!strings.Contains(strings.ToLower(c.Company), lower) &&
			!strings.Contains(c.Phone, needle) {
			continue
		}
		if p.Status != "" && p.Status != StatusAll && string(c.Status) != p.Status {
			continue
		}
		out = append(out, c)
	}
	return out
}
