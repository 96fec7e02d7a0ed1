package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"edtctl/pkg/timetable"

	"github.com/rs/zerolog"
)

const dateQueryArg = "date"

// WeekFetcher loads the scraped days of the week containing date
type WeekFetcher interface {
	FetchWeek(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error)
}

// WeekResponse is the JSON body of GET /v1/week
type WeekResponse struct {
	Week    string                     `json:"week"`
	Start   string                     `json:"start"`
	Days    []timetable.DaySchedule    `json:"days"`
	Grid    timetable.Grid             `json:"grid"`
	Count   int                        `json:"count"`
	Summary []timetable.SubjectSummary `json:"summary"`
}

// WeekHandler serves merged weeks loaded through a WeekFetcher
type WeekHandler struct {
	fetcher WeekFetcher
	log     zerolog.Logger
	now     func() time.Time
}

// NewWeekHandler returns a handler that resolves weeks relative to the current time.
func NewWeekHandler(fetcher WeekFetcher, log zerolog.Logger) *WeekHandler {
	return &WeekHandler{fetcher: fetcher, log: log, now: time.Now}
}

// GetWeek handles GET /v1/week?date=DD/MM/YYYY. Without date the current week is returned.
func (h *WeekHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date := h.now()
	if s := r.URL.Query().Get(dateQueryArg); s != "" {
		parsed, err := timetable.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid argument "+dateQueryArg+": expected DD/MM/YYYY")
			return
		}
		date = parsed
	}

	week := timetable.WeekOf(date)
	days, err := h.fetcher.FetchWeek(r.Context(), date)
	if err != nil {
		h.log.Error().Err(err).Str("week", week.Key()).Msg("could not fetch week")
		writeError(w, http.StatusBadGateway, "Could not load timetable")
		return
	}

	grid := timetable.BuildGrid(days, timetable.TimeSlots())
	writeJSON(w, http.StatusOK, WeekResponse{
		Week:    week.Label(),
		Start:   timetable.FormatDate(week.Start),
		Days:    days,
		Grid:    grid,
		Count:   grid.BlockCount(),
		Summary: timetable.SummarizeWeek(grid),
	})
}

// Ping handles GET /ping
func (h *WeekHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
