package tui

import (
	"fmt"
	"strings"
	"time"

	"edtctl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Username", "user"),
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Cache Backend", "cache"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "user":
			err = runSetUsernameTUI(cfg)
		case "theme":
			err = runSetThemeTUI(cfg)
		case "cache":
			err = runSetCacheTUI(cfg)
		case "view":
			PrintConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

// PrintConfig shows the effective configuration, environment overrides included.
func PrintConfig(cfg *config.AppConfig) {
	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.edtctl.json) ---"))
	fmt.Printf("Username: %s\n", valueOrUnset(cfg.Username))
	if cfg.Password != "" {
		fmt.Println("Password: set (EDT_PASSWORD)")
	} else {
		fmt.Println("Password: Not set (export EDT_PASSWORD)")
	}
	fmt.Printf("Server: %s\n", valueOrUnset(cfg.BaseURL))
	fmt.Printf("Cache: %s (%s)\n", valueOrDefault(cfg.CacheBackend, "file"), cfg.CacheDuration())
	if cfg.CacheBackend == "redis" {
		fmt.Printf("Redis: %s\n", valueOrUnset(cfg.RedisAddr))
	}
	fmt.Printf("Accent Color: %s\n", valueOrDefault(cfg.AccentColor, defaultAccent))
	fmt.Println()
}

func valueOrUnset(s string) string {
	return valueOrDefault(s, "Not set")
}

func valueOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func runSetUsernameTUI(cfg *config.AppConfig) error {
	input := cfg.Username

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your timetable username").
				Description("Usually firstname.lastname. The password is read from EDT_PASSWORD and never saved.").
				Placeholder("prenom.nom").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		fmt.Println("Operation cancelled: No username provided.")
		return nil
	}

	cfg.Username = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Username saved: %s\n", input)))
	return nil
}

func runSetCacheTUI(cfg *config.AppConfig) error {
	backend := valueOrDefault(cfg.CacheBackend, "file")
	ttl := cfg.CacheTTL
	redisAddr := cfg.RedisAddr

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should fetched weeks be cached?").
				Options(
					huh.NewOption("Local files (~/.edtctl_cache)", "file"),
					huh.NewOption("Redis", "redis"),
					huh.NewOption("Disabled", "none"),
				).
				Value(&backend),
			huh.NewInput().
				Title("Cache lifetime").
				Description("Go duration, e.g. 12h or 30m. Empty keeps the default.").
				Placeholder(config.DefaultCacheTTL.String()).
				Value(&ttl).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if d, err := time.ParseDuration(s); err != nil || d < 0 {
						return fmt.Errorf("must be a positive duration such as 12h")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Redis address").
				Placeholder("localhost:6379").
				Value(&redisAddr),
		).WithHideFunc(func() bool { return backend != "redis" }),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheTTL = ttl
	cfg.RedisAddr = strings.TrimSpace(redisAddr)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Cache set to %s.\n", backend)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for edtctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Gryffondor Red", colorBlock("160")), "160"),
					huh.NewOption(fmt.Sprintf("%s Serdaigle Blue", colorBlock("33")), "33"),
					huh.NewOption(fmt.Sprintf("%s Poufsouffle Yellow", colorBlock("220")), "220"),
					huh.NewOption(fmt.Sprintf("%s Serpentard Green", colorBlock("28")), "28"),
					huh.NewOption(fmt.Sprintf("%s Default Purple", colorBlock(defaultAccent)), defaultAccent),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
