package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#0EA5E9") // Sky
	ColorSecondary = lipgloss.Color("#6366F1") // Indigo

	// Outcome colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// PR state colors
	ColorOpen   = lipgloss.Color("#10B981") // Green
	ColorDraft  = lipgloss.Color("#F59E0B") // Amber
	ColorMerged = lipgloss.Color("#8B5CF6") // Purple
	ColorClosed = lipgloss.Color("#6B7280") // Gray

	ColorTextMuted  = lipgloss.Color("#9CA3AF")
	ColorTextBright = lipgloss.Color("#FFFFFF")
	ColorBgMuted    = lipgloss.Color("#111827")
	ColorBorder     = lipgloss.Color("#374151")
)

// Base styles
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	ServiceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Text styles
var (
	BoldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextBright)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// PR state styles
var (
	StatusOpenStyle   = lipgloss.NewStyle().Foreground(ColorOpen).Bold(true)
	StatusDraftStyle  = lipgloss.NewStyle().Foreground(ColorDraft).Bold(true)
	StatusMergedStyle = lipgloss.NewStyle().Foreground(ColorMerged).Bold(true)
	StatusClosedStyle = lipgloss.NewStyle().Foreground(ColorClosed)
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextBright).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableRowAltStyle = lipgloss.NewStyle().
				Background(ColorBgMuted).
				Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// Tree styles
var (
	TreeRootStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TreeEnumeratorStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)
