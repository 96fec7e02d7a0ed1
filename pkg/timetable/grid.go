package timetable

import "fmt"

// CellKind tells the renderer what to draw for one (day, slot) position
type CellKind int

const (
	// CellFree is an empty slot with no course.
	CellFree CellKind = iota
	// CellBlock is the first row of a course block; Span rows are covered.
	CellBlock
	// CellHidden is covered by a block that started in an earlier row, or continues a
	// course that started before this row's hour. The latter has no visible block when
	// the course began before the first slot or under another block.
	CellHidden
)

func (k CellKind) String() string {
	switch k {
	case CellBlock:
		return "block"
	case CellHidden:
		return "hidden"
	default:
		return "free"
	}
}

// MarshalText renders the kind as its name in JSON payloads.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *CellKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "free":
		*k = CellFree
	case "block":
		*k = CellBlock
	case "hidden":
		*k = CellHidden
	default:
		return fmt.Errorf("unknown cell kind %q", string(b))
	}
	return nil
}

// Cell is the render instruction for a single grid position
type Cell struct {
	Kind   CellKind    `json:"kind"`
	Span   int         `json:"span,omitempty"`
	Label  string      `json:"label,omitempty"` // Merged range e.g. "08:00-12:00"
	Course *CourseSlot `json:"course,omitempty"`

	// Range is the merged time range of a block. Timed is false when the block was
	// found through the literal label fallback and has no parseable range.
	Range TimeRange `json:"-"`
	Timed bool      `json:"-"`
}

// Grid is the weekly table of cells, indexed Cells[day][slot]
type Grid struct {
	Days  []string `json:"days"`
	Slots []string `json:"slots"`
	Cells [][]Cell `json:"cells"`
}

// Block is a visible course block with its position in the grid
type Block struct {
	Day    int
	Slot   int
	Span   int
	Course CourseSlot
	Range  TimeRange
	Timed  bool
}

// BuildGrid resolves every (day, slot) pair of the week into a cell.
//
// Scanning each day in slot order, a course that started before the current slot is a
// continuation and is hidden. A course starting at the slot opens a block which absorbs the
// following records with the same subject, instructor and room as long as each one starts
// exactly where the previous one ended.
func BuildGrid(days []DaySchedule, slots []string) Grid {
	g := Grid{
		Days:  make([]string, len(days)),
		Slots: slots,
		Cells: make([][]Cell, len(days)),
	}

	for d, day := range days {
		g.Days[d] = day.Date
		g.Cells[d] = buildDay(day.Courses, slots)
	}

	return g
}

func buildDay(courses []CourseSlot, slots []string) []Cell {
	cells := make([]Cell, len(slots))
	coveredUntil := 0

	for i, label := range slots {
		if i < coveredUntil {
			cells[i] = Cell{Kind: CellHidden}
			continue
		}

		course, ok := CourseAt(courses, label)
		if !ok {
			cells[i] = Cell{Kind: CellFree}
			continue
		}

		hour, hourOK := slotHour(label)
		r, timed := ParseTimeRange(course.TimeRange)
		if !timed || !hourOK {
			c := course
			cells[i] = Cell{Kind: CellBlock, Span: 1, Label: course.TimeRange, Course: &c}
			coveredUntil = i + 1
			continue
		}

		if r.StartHour < hour {
			cells[i] = Cell{Kind: CellHidden}
			continue
		}

		merged := extendBlock(courses, slots, course, r)
		span := rowSpan(slots, i, merged.EndHour)

		c := course
		cells[i] = Cell{
			Kind:   CellBlock,
			Span:   span,
			Label:  merged.String(),
			Course: &c,
			Range:  merged,
			Timed:  true,
		}
		coveredUntil = i + span
	}

	return cells
}

// extendBlock walks forward through the slots starting at the block's current end and
// absorbs every record of the same course that starts at that hour.
func extendBlock(courses []CourseSlot, slots []string, head CourseSlot, r TimeRange) TimeRange {
	merged := r
	for {
		label, ok := labelForHour(slots, merged.EndHour)
		if !ok {
			return merged
		}

		next, ok := CourseAt(courses, label)
		if !ok || !next.sameBlock(head) {
			return merged
		}

		nr, ok := ParseTimeRange(next.TimeRange)
		if !ok || nr.StartHour != merged.EndHour || nr.EndHour <= merged.EndHour {
			return merged
		}

		merged.EndHour = nr.EndHour
		merged.EndMinute = nr.EndMinute
	}
}

// rowSpan counts the rows from start whose hour is before end. It is at least 1 and never
// runs past the last slot.
func rowSpan(slots []string, start, end int) int {
	span := 0
	for j := start; j < len(slots); j++ {
		h, ok := slotHour(slots[j])
		if !ok || h >= end {
			break
		}
		span++
	}
	if span == 0 {
		span = 1
	}
	return span
}

func labelForHour(slots []string, hour int) (string, bool) {
	for _, s := range slots {
		if h, ok := slotHour(s); ok && h == hour {
			return s, true
		}
	}
	return "", false
}

// Blocks lists the visible course blocks, day by day in slot order.
func (g Grid) Blocks() []Block {
	var blocks []Block
	for d, day := range g.Cells {
		for s, cell := range day {
			if cell.Kind != CellBlock || cell.Course == nil {
				continue
			}
			blocks = append(blocks, Block{
				Day:    d,
				Slot:   s,
				Span:   cell.Span,
				Course: *cell.Course,
				Range:  cell.Range,
				Timed:  cell.Timed,
			})
		}
	}
	return blocks
}

// Interval is the time covered by b. Untimed blocks cover their rows, one hour each.
func (g Grid) Interval(b Block) TimeRange {
	if b.Timed {
		return b.Range
	}
	start := FirstSlotHour
	if b.Slot < len(g.Slots) {
		if h, ok := slotHour(g.Slots[b.Slot]); ok {
			start = h
		}
	}
	return TimeRange{StartHour: start, EndHour: start + b.Span}
}

// BlockCount is the number of visible course blocks. A merged block counts once.
func (g Grid) BlockCount() int {
	n := 0
	for _, day := range g.Cells {
		for _, cell := range day {
			if cell.Kind == CellBlock {
				n++
			}
		}
	}
	return n
}

// WeeklyCourseCount counts the merged course blocks of a week.
func WeeklyCourseCount(days []DaySchedule, slots []string) int {
	return BuildGrid(days, slots).BlockCount()
}
