package tui

import (
	"fmt"
	"strings"

	"edtctl/pkg/timetable"

	"github.com/charmbracelet/lipgloss"
)

const (
	slotColumnWidth = 7
	dayColumnWidth  = 20
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// truncate cuts s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func blockLines(cell timetable.Cell, width int) []string {
	c := cell.Course
	lines := []string{c.Subject}
	if cell.Label != "" {
		lines = append(lines, cell.Label)
	}
	if c.Instructor != "" {
		lines = append(lines, timetable.FormatInstructor(c.Instructor))
	}
	if c.Room != "" {
		lines = append(lines, c.Room)
	}

	if cell.Span < len(lines) {
		lines = lines[:max(cell.Span, 1)]
	}
	for i := range lines {
		lines[i] = truncate(lines[i], width)
	}
	return lines
}

func renderDayColumn(header string, cells []timetable.Cell) string {
	parts := []string{headerStyle.Width(dayColumnWidth).Render(truncate(header, dayColumnWidth))}

	inner := dayColumnWidth - 2
	blockStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accentStyle.GetForeground()).
		PaddingLeft(1).
		Width(inner + 1)

	for _, cell := range cells {
		switch cell.Kind {
		case timetable.CellBlock:
			span := max(cell.Span, 1)
			parts = append(parts, blockStyle.
				Height(span).
				MaxHeight(span).
				Render(strings.Join(blockLines(cell, inner), "\n")))
		case timetable.CellHidden:
			// drawn by the block above
		default:
			parts = append(parts, mutedStyle.Width(dayColumnWidth).Render("·"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderGrid draws the week as a table with one row per slot. Merged blocks are drawn
// once, over all the rows they cover.
func RenderGrid(g timetable.Grid) string {
	slotParts := []string{headerStyle.Width(slotColumnWidth).Render("")}
	for _, s := range g.Slots {
		slotParts = append(slotParts, mutedStyle.Width(slotColumnWidth).Render(s))
	}

	columns := []string{lipgloss.JoinVertical(lipgloss.Left, slotParts...)}
	for d, header := range g.Days {
		columns = append(columns, renderDayColumn(header, g.Cells[d]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// RenderDays is the list view: each day followed by its merged blocks.
func RenderDays(g timetable.Grid) string {
	blocks := g.Blocks()
	if len(blocks) == 0 {
		return errorStyle.Render("📅 Aucun cours trouvé pour cette date")
	}

	byDay := make(map[int][]timetable.Block)
	for _, b := range blocks {
		byDay[b.Day] = append(byDay[b.Day], b)
	}

	var sb strings.Builder
	for d, header := range g.Days {
		sb.WriteString(accentStyle.Bold(true).Render(header))
		sb.WriteString("\n")

		if len(byDay[d]) == 0 {
			sb.WriteString(mutedStyle.Render("  Aucun cours ce jour"))
			sb.WriteString("\n\n")
			continue
		}
		for _, b := range byDay[d] {
			line := fmt.Sprintf("  %s  %s", g.Interval(b), b.Course.Subject)
			if b.Course.Instructor != "" {
				line += " - " + timetable.FormatInstructor(b.Course.Instructor)
			}
			if b.Course.Room != "" {
				line += fmt.Sprintf(" (%s)", b.Course.Room)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderSummary prints the block count line followed by hours per subject.
func RenderSummary(g timetable.Grid) string {
	var sb strings.Builder
	sb.WriteString(accentStyle.Render(fmt.Sprintf("%d cours cette semaine", g.BlockCount())))

	for _, s := range timetable.SummarizeWeek(g) {
		sb.WriteString(fmt.Sprintf("\n  %-28s %d bloc(s), %gh", truncate(s.Subject, 28), s.Blocks, s.Hours))
	}
	return sb.String()
}
