package timetable

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SubjectSummary holds the merged blocks of one subject over the week.
type SubjectSummary struct {
	Subject string  `json:"subject"`
	Blocks  int     `json:"blocks"`
	Hours   float64 `json:"hours"`
}

// SummarizeWeek groups the visible blocks by subject, in order of first appearance
// (Monday first, then by slot). Blocks without a parseable range count one hour per row.
func SummarizeWeek(g Grid) []SubjectSummary {
	summaries := make(map[string]*SubjectSummary)
	var order []string

	for _, b := range g.Blocks() {
		s, exists := summaries[b.Course.Subject]
		if !exists {
			s = &SubjectSummary{Subject: b.Course.Subject}
			summaries[b.Course.Subject] = s
			order = append(order, b.Course.Subject)
		}
		s.Blocks++
		s.Hours += BlockHours(b)
	}

	result := make([]SubjectSummary, 0, len(order))
	for _, subject := range order {
		result = append(result, *summaries[subject])
	}
	return result
}

// BlockHours is the length of a block in hours.
func BlockHours(b Block) float64 {
	if !b.Timed {
		return float64(b.Span)
	}
	return b.Range.Duration().Hours()
}

// FormatInstructor capitalises each word of an instructor name and collapses
// whitespace, so "jean  dupont" becomes "Jean Dupont".
func FormatInstructor(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return cases.Title(language.French).String(name)
}
