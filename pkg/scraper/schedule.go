package scraper

import (
	"context"
	"fmt"
	"html"
	"io"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"edtctl/pkg/timetable"

	"github.com/PuerkitoBio/goquery"
)

var (
	leftPattern = regexp.MustCompile(`(?i)left\s*:\s*(-?[\d.]+)`)
	brPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// dayColumnTolerance is how far (in CSS percent) a course box may sit from its day column
const dayColumnTolerance = 1.0

// ParseWeek parses a planning page into one DaySchedule per day column, in page order.
func ParseWeek(r io.Reader) ([]timetable.DaySchedule, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return parseDays(doc), nil
}

func parseDays(doc *goquery.Document) []timetable.DaySchedule {
	boxes := doc.Find(".Case")
	var days []timetable.DaySchedule

	// Day columns and course boxes are absolutely positioned siblings, the only link
	// between them is their CSS left offset
	doc.Find(".Jour").Each(func(i int, day *goquery.Selection) {
		date := collapse(day.Find(".TCJour").Text())
		dayLeft, ok := styleLeft(day)

		var courses []timetable.CourseSlot
		if ok {
			boxes.Each(func(j int, box *goquery.Selection) {
				boxLeft, ok := styleLeft(box)
				if !ok || math.Abs(boxLeft-dayLeft) >= dayColumnTolerance {
					return
				}
				if course, ok := parseCourse(box); ok {
					courses = append(courses, course)
				}
			})
		}

		days = append(days, timetable.DaySchedule{Date: date, Courses: courses})
	})

	return days
}

// parseCourse reads the three rows of a course box: subject, instructor, then time and room.
func parseCourse(box *goquery.Selection) (timetable.CourseSlot, bool) {
	table := box.Find("table.TCase").First()
	if table.Length() == 0 {
		return timetable.CourseSlot{}, false
	}

	rows := table.Find("tr")
	if rows.Length() < 3 {
		return timetable.CourseSlot{}, false
	}

	subjectSel := rows.Eq(0).Find(".TCase")
	if subjectSel.Length() == 0 {
		subjectSel = rows.Eq(0)
	}
	subject := collapse(subjectSel.First().Text())

	var instructor string
	if prof := rows.Eq(1).Find(".TCProf").First(); prof.Length() > 0 {
		markup, _ := prof.Html()
		// Only the text before the first <br> is the name, the rest lists the groups
		first := brPattern.Split(markup, 2)[0]
		instructor = collapse(html.UnescapeString(tagPattern.ReplaceAllString(first, "")))
	}

	timeRange := collapse(rows.Eq(2).Find(".TChdeb").First().Text())
	room := collapse(rows.Eq(2).Find(".TCSalle").First().Text())
	room = strings.TrimSpace(strings.Replace(room, "Salle:", "", 1))

	return timetable.CourseSlot{
		Subject:    subject,
		Instructor: instructor,
		Room:       room,
		TimeRange:  timeRange,
	}, true
}

func styleLeft(sel *goquery.Selection) (float64, bool) {
	style, _ := sel.Attr("style")
	m := leftPattern.FindStringSubmatch(style)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PadWeek maps scraped days onto the Monday-Friday columns of w. Days are matched by the
// French weekday name at the start of their label; days without a recognisable name fill
// the remaining columns in page order. Missing weekdays become empty days.
func PadWeek(days []timetable.DaySchedule, w timetable.Week) []timetable.DaySchedule {
	week := make([]timetable.DaySchedule, timetable.DaysPerWeek)
	filled := make([]bool, timetable.DaysPerWeek)

	var unnamed []timetable.DaySchedule
	for _, d := range days {
		idx := weekdayIndex(d.Date)
		if idx < 0 || filled[idx] {
			unnamed = append(unnamed, d)
			continue
		}
		week[idx] = d
		filled[idx] = true
	}

	for i := range week {
		if filled[i] {
			continue
		}
		if len(unnamed) > 0 {
			week[i] = unnamed[0]
			unnamed = unnamed[1:]
			if week[i].Date == "" {
				week[i].Date = w.DayLabel(i)
			}
			continue
		}
		week[i] = timetable.DaySchedule{Date: w.DayLabel(i)}
	}

	return week
}

func weekdayIndex(label string) int {
	lower := strings.ToLower(strings.TrimSpace(label))
	for i, name := range timetable.WeekdayNames {
		if strings.HasPrefix(lower, strings.ToLower(name)) {
			return i
		}
	}
	return -1
}

// planningURL builds the week view URL for a user and date.
func (c *Client) planningURL(date time.Time) string {
	q := url.Values{}
	q.Set("action", "posEDTLMS")
	q.Set("serverID", "C")
	q.Set("Tel", c.username)
	q.Set("date", timetable.FormatDate(date))
	return fmt.Sprintf("%s/WebPsDyn.aspx?%s", c.baseURL, q.Encode())
}

// FetchWeek downloads and parses the week containing date, always returning 5 days.
func (c *Client) FetchWeek(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error) {
	week := timetable.WeekOf(date)
	key := cacheKey(c.username, week)

	if c.cache != nil {
		if days, ok := c.cache.Get(ctx, key); ok {
			c.log.Debug().Str("week", week.Key()).Msg("cache hit")
			return days, nil
		}
		c.log.Debug().Str("week", week.Key()).Msg("cache miss")
	}

	if c.username == "" {
		return nil, ErrMissingCredentials
	}

	doc, err := c.fetchPlanning(ctx, date)
	if err != nil {
		return nil, err
	}

	days := PadWeek(parseDays(doc), week)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, days); err != nil {
			c.log.Warn().Err(err).Str("week", week.Key()).Msg("could not cache week")
		}
	}

	return days, nil
}

func (c *Client) fetchPlanning(ctx context.Context, date time.Time) (*goquery.Document, error) {
	resp, err := c.get(ctx, c.planningURL(date))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse planning page: %w", err)
	}

	if !isLoginPage(doc) {
		return doc, nil
	}

	c.log.Debug().Msg("login page detected, submitting credentials")
	return c.login(ctx, doc, resp.Request.URL)
}

func cacheKey(username string, w timetable.Week) string {
	if username == "" {
		return w.Key()
	}
	return username + "_" + w.Key()
}
