package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit     key.Binding
	Back     key.Binding
	NavBack  key.Binding
	Settings key.Binding

	// Tabs
	Calendar   key.Binding
	Quotes     key.Binding
	Invoices   key.Binding
	Clients    key.Binding
	Financials key.Binding
	Command    key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding

	// Actions
	Select  key.Binding
	New     key.Binding
	Edit    key.Binding
	Search  key.Binding
	Filter  key.Binding
	Status  key.Binding
	View    key.Binding
	Dates   key.Binding
	Archive key.Binding
	Clear   key.Binding
	Save    key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NavBack:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "previous view")),
	Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Calendar:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "calendar")),
	Quotes:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "quotes")),
	Invoices:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "invoices")),
	Clients:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "clients")),
	Financials: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "financials")),
	Command:    key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "command")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
	Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	View:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
	Dates:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dates")),
	Archive:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
}
