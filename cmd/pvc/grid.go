package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	seatFree   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	seatTaken  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	screenLine = lipgloss.NewStyle().Faint(true)
)

// renderSeatGrid draws the seat map with booked seats marked and
// colored. Empty placeholders in the final row render as blanks.
func renderSeatGrid(grid [][]string, booked map[string]bool) string {
	if len(grid) == 0 {
		return ""
	}
	width := len(grid[0]) * 5
	var b strings.Builder
	b.WriteString(screenLine.Render(center("SCREEN", width)))
	b.WriteByte('\n')
	for _, row := range grid {
		for _, label := range row {
			if label == "" {
				b.WriteString(strings.Repeat(" ", 5))
				continue
			}
			if booked[label] {
				b.WriteString(seatTaken.Render(pad("[" + label + "]")))
			} else {
				b.WriteString(seatFree.Render(pad(label)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func pad(s string) string {
	for len(s) < 5 {
		s += " "
	}
	return s
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
