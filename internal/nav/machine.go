package nav

// Transition maps one context to the next
type Transition func(Context) Context

// ToTab, ToClient and friends adapt the transition functions for Apply

func ToTab(tab Tab) Transition {
	return func(c Context) Context { return NavigateToTab(c, tab) }
}

func ToClient(clientID string) Transition {
	return func(Context) Context { return NavigateToClient(clientID) }
}

func ToQuote(quoteID, clientID string) Transition {
	return func(Context) Context { return NavigateToQuote(quoteID, clientID) }
}

func ToInvoice(invoiceID, clientID string) Transition {
	return func(Context) Context { return NavigateToInvoice(invoiceID, clientID) }
}

func Clear() Transition {
	return ClearSelection
}

func ToNewInvoiceFromQuote(quoteID string) Transition {
	return func(Context) Context { return CreateInvoiceFromQuote(quoteID) }
}

func ToNewQuoteForClient(clientID string) Transition {
	return func(Context) Context { return CreateQuoteForClient(clientID) }
}

// Machine owns the current context for a session and remembers where it
// has been so the UI can step back
type Machine struct {
	current Context
	history []Context
	limit   int
}

const defaultHistory = 50

func NewMachine() *Machine {
	return &Machine{current: Initial(), limit: defaultHistory}
}

func (m *Machine) Current() Context {
	return m.current
}

// Apply runs t and records the previous context. Applying a transition
// that changes nothing is not recorded.
func (m *Machine) Apply(t Transition) Context {
	next := t(m.current)
	if next == m.current {
		return next
	}
	m.history = append(m.history, m.current)
	if len(m.history) > m.limit {
		m.history = m.history[len(m.history)-m.limit:]
	}
	m.current = next
	return next
}

// Back restores the previous context, reporting false when there is none
func (m *Machine) Back() (Context, bool) {
	if len(m.history) == 0 {
		return m.current, false
	}
	last := len(m.history) - 1
	m.current = m.history[last]
	m.history = m.history[:last]
	return m.current, true
}

// Depth is the number of contexts Back can return to
func (m *Machine) Depth() int {
	return len(m.history)
}
