package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NewFleetTable creates a bordered table with alternating row shading
func NewFleetTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		BorderRow(false).
		BorderColumn(true).
		Headers(headers...).
		StyleFunc(defaultTableStyleFunc)
}

func defaultTableStyleFunc(row, col int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return TableHeaderStyle
	case row%2 == 0:
		return TableCellStyle
	default:
		return TableRowAltStyle
	}
}
