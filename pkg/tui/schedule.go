package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"edtctl/pkg/config"
	"edtctl/pkg/exporter"
	"edtctl/pkg/scraper"
	"edtctl/pkg/timetable"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// weekView is the state of the week browser
type weekView struct {
	week timetable.Week
	days []timetable.DaySchedule
	grid timetable.Grid
	err  error
	list bool
}

func (v *weekView) load(ctx context.Context, loader *scraper.Loader) {
	var days []timetable.DaySchedule
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Chargement de la %s...", strings.ToLower(v.week.Label()))).
		Action(func() {
			days, err = loader.Load(ctx, v.week.Start)
		}).
		Run()

	if errors.Is(err, scraper.ErrSuperseded) || errors.Is(err, scraper.ErrLoaderClosed) {
		return
	}

	v.err = err
	if err != nil {
		v.days = nil
		v.grid = timetable.Grid{}
		return
	}
	v.days = days
	v.grid = timetable.BuildGrid(days, timetable.TimeSlots())
}

func (v *weekView) print() {
	fmt.Println()
	fmt.Println(accentStyle.Bold(true).Render(v.week.Label()))

	if v.err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("❌ Impossible de charger l'emploi du temps: %v", v.err)))
		fmt.Println()
		return
	}

	if v.list {
		fmt.Println(RenderDays(v.grid))
	} else {
		fmt.Println(RenderGrid(v.grid))
	}
	fmt.Println()
	fmt.Println(RenderSummary(v.grid))
	fmt.Println()
}

// RunScheduleTUI runs the week browser: navigate between weeks, pick a date, export.
func RunScheduleTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Username == "" {
		fmt.Println(errorStyle.Render("No username configured."))
		fmt.Println("Please run 'Settings' from the main menu or 'edtctl config --set-user' first.")
		return nil
	}

	ctx := context.Background()
	client, err := scraper.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	loader := scraper.NewLoader(client.FetchWeek)
	defer loader.Close()

	view := &weekView{week: timetable.WeekOf(time.Now())}
	view.load(ctx, loader)

	for {
		view.print()

		options := []huh.Option[string]{
			huh.NewOption("⬅️  Semaine précédente", "prev"),
			huh.NewOption("➡️  Semaine suivante", "next"),
			huh.NewOption("📍 Aujourd'hui", "today"),
			huh.NewOption("🗓️  Choisir une date", "date"),
		}
		if view.err != nil {
			options = append(options, huh.NewOption("🔄 Réessayer", "retry"))
		} else {
			options = append(options, huh.NewOption("📤 Exporter la semaine", "export"))
		}
		viewLabel := "📋 Vue liste"
		if view.list {
			viewLabel = "🗂️  Vue grille"
		}
		options = append(options,
			huh.NewOption(viewLabel, "toggle"),
			huh.NewOption("Back to Main Menu", "back"),
		)

		var action string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Que voulez-vous faire ?").
					Options(options...).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "prev":
			view.week = view.week.Prev()
		case "next":
			view.week = view.week.Next()
		case "today":
			view.week = timetable.WeekOf(time.Now())
		case "date":
			date, ok, err := askDate()
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			view.week = timetable.WeekOf(date)
		case "retry":
		case "export":
			if err := runExportTUI(view.grid, view.week); err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
			}
			continue
		case "toggle":
			view.list = !view.list
			continue
		}

		view.load(ctx, loader)
	}
}

func askDate() (time.Time, bool, error) {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date (JJ/MM/AAAA)").
				Placeholder(timetable.FormatDate(time.Now())).
				Value(&input).
				Validate(func(s string) error {
					if s == "" || timetable.IsValidDate(s) {
						return nil
					}
					return fmt.Errorf("date invalide, format attendu JJ/MM/AAAA")
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return time.Time{}, false, err
	}
	if input == "" {
		return time.Time{}, false, nil
	}

	date, err := timetable.ParseDate(input)
	if err != nil {
		return time.Time{}, false, nil
	}
	return date, true, nil
}

func runExportTUI(g timetable.Grid, w timetable.Week) error {
	var format string
	var outputFile string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("Calendrier (.ics)", "ics"),
					huh.NewOption("Tableur (.csv)", "csv"),
					huh.NewOption("Graphique (.html)", "html"),
				).
				Value(&format),

			huh.NewInput().
				Title("Output file name").
				Description("The extension is added if missing.").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	// Defaults
	outputFile = "edt-" + w.Key()

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, "."+format) {
		outputFile += "." + format
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch format {
	case "csv":
		err = exporter.GenerateCSV(g, w, file)
	case "html":
		err = exporter.GenerateChart(g, w, file)
	default:
		err = exporter.GenerateICS(g, w, file)
	}
	if err != nil {
		return fmt.Errorf("failed to export week: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d course blocks to %s", g.BlockCount(), outputFile)))
	return nil
}
