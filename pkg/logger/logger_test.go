package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfigure_LevelFiltering(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf})

	l := For("scraper")
	l.Debug().Msg("hidden")
	l.Info().Str("week", "2025-10-13").Msg("fetched")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered at info level, got: %s", out)
	}
	if !strings.Contains(out, `"component":"scraper"`) || !strings.Contains(out, `"week":"2025-10-13"`) {
		t.Errorf("expected structured fields in output, got: %s", out)
	}
}

func TestParseLevel_Default(t *testing.T) {
	if parseLevel("verbose") != zerolog.WarnLevel {
		t.Errorf("expected unknown level to fall back to warn")
	}
	if parseLevel("DEBUG") != zerolog.DebugLevel {
		t.Errorf("expected level parsing to be case insensitive")
	}
}
