package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Truncate shortens text to maxLen display columns, adding an ellipsis.
// Width is measured ANSI-aware.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return lipgloss.NewStyle().MaxWidth(maxLen).Render(text)
	}
	return lipgloss.NewStyle().MaxWidth(maxLen-3).Render(text) + "..."
}

func Pad(text string, width int, align lipgloss.Position) string {
	return lipgloss.PlaceHorizontal(width, align, text)
}

// RenderBox draws content in a rounded box with an optional title line
func RenderBox(title string, content string) string {
	if title == "" {
		return BoxStyle.Render(content)
	}
	titleStyled := HeaderStyle.UnsetPadding().Render(title)
	return BoxStyle.BorderForeground(ColorPrimary).
		Render(lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", content))
}

// RenderBulletList renders a list with bullets
func RenderBulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, DimStyle.Render("  • ")+item)
	}
	return strings.Join(lines, "\n")
}

// RenderSeparator renders a horizontal rule; width <= 0 uses the terminal width
func RenderSeparator(width int) string {
	if width <= 0 {
		width = GetTerminalWidth()
	}
	return DimStyle.Render(strings.Repeat("─", width))
}

// RenderKeyValueList renders aligned "key: value" lines in keys order
func RenderKeyValueList(pairs map[string]string, keys []string) string {
	maxKeyLen := 0
	for _, key := range keys {
		if w := lipgloss.Width(key); w > maxKeyLen {
			maxKeyLen = w
		}
	}

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		padded := Pad(key, maxKeyLen, lipgloss.Left)
		lines = append(lines, fmt.Sprintf("%s %s", DimStyle.Render(padded+":"), pairs[key]))
	}
	return strings.Join(lines, "\n")
}

// Plural returns "1 file" / "2 files", "1 match" / "2 matches"
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	for _, suffix := range []string{"s", "x", "ch", "sh"} {
		if strings.HasSuffix(word, suffix) {
			return fmt.Sprintf("%d %ses", n, word)
		}
	}
	return fmt.Sprintf("%d %ss", n, word)
}
