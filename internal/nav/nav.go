// Package nav holds the shared view focus: which tab is active and which
// client, quote or invoice is deep-linked. Contexts are values; every change
// goes through one of the transition functions and yields a new Context.
package nav

import "fmt"

type Tab string

const (
	TabCalendar   Tab = "calendar"
	TabQuotes     Tab = "quotes"
	TabInvoices   Tab = "invoices"
	TabClients    Tab = "clients"
	TabFinancials Tab = "financials"
	TabCommand    Tab = "command"
)

// Tabs lists tabs in header order
var Tabs = []Tab{TabCalendar, TabQuotes, TabInvoices, TabClients, TabFinancials, TabCommand}

// Title returns the tab's header label
func (t Tab) Title() string {
	switch t {
	case TabCalendar:
		return "Calendar"
	case TabQuotes:
		return "Quotes"
	case TabInvoices:
		return "Invoices"
	case TabClients:
		return "Clients"
	case TabFinancials:
		return "Financials"
	case TabCommand:
		return "Command Center"
	default:
		return string(t)
	}
}

func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Context is the focus record. Empty ids mean nothing is selected.
type Context struct {
	ActiveTab         Tab
	SelectedClientID  string
	SelectedQuoteID   string
	SelectedInvoiceID string
}

// Initial is the context a session starts in
func Initial() Context {
	return Context{ActiveTab: TabCalendar}
}

// HasSelection reports whether any id is focused
func (c Context) HasSelection() bool {
	return c.SelectedClientID != "" || c.SelectedQuoteID != "" || c.SelectedInvoiceID != ""
}

// NavigateToTab switches tabs and keeps the current selection
func NavigateToTab(c Context, tab Tab) Context {
	c.ActiveTab = tab
	return c
}

func NavigateToClient(clientID string) Context {
	return Context{ActiveTab: TabClients, SelectedClientID: clientID}
}

// NavigateToQuote focuses a quote; clientID may be empty
func NavigateToQuote(quoteID, clientID string) Context {
	return Context{ActiveTab: TabQuotes, SelectedQuoteID: quoteID, SelectedClientID: clientID}
}

// NavigateToInvoice focuses an invoice; clientID may be empty
func NavigateToInvoice(invoiceID, clientID string) Context {
	return Context{ActiveTab: TabInvoices, SelectedInvoiceID: invoiceID, SelectedClientID: clientID}
}

// ClearSelection drops every selected id and stays on the current tab
func ClearSelection(c Context) Context {
	return Context{ActiveTab: c.ActiveTab}
}

// CreateInvoiceFromQuote opens the invoices tab with the source quote focused
func CreateInvoiceFromQuote(quoteID string) Context {
	return Context{ActiveTab: TabInvoices, SelectedQuoteID: quoteID}
}

// CreateQuoteForClient opens the quotes tab scoped to a client
func CreateQuoteForClient(clientID string) Context {
	return Context{ActiveTab: TabQuotes, SelectedClientID: clientID}
}
