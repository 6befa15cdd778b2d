package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))
	statusStyle   = lipgloss.NewStyle().Foreground(successColor)
	errStyle      = lipgloss.NewStyle().Foreground(errorColor)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(16)
	valueStyle    = lipgloss.NewStyle().Foreground(accentColor)

	// Box styles
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	// Selection banner shown when a deep link pins the list
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(warningColor).Padding(0, 1)

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(primaryColor).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow
)

// statusColor picks a color for a status value
func statusColor(status string) lipgloss.Color {
	switch strings.ToLower(status) {
	case "paid", "approved", "active", "completed", "ready":
		return successColor
	case "overdue", "rejected", "expired", "urgent":
		return errorColor
	case "partial", "pending", "sent", "in production":
		return warningColor
	default:
		return mutedColor
	}
}

// renderStatus pads before styling so columns stay aligned
func renderStatus(status string, width int) string {
	return lipgloss.NewStyle().Foreground(statusColor(status)).Render(fmt.Sprintf("%-*s", width, status))
}
