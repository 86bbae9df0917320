package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/vmadmin/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	symbol string
	color  string
}

var levelStyles = map[log.Level]levelStyle{
	log.DebugLevel: {"DBG", "#7E57C2"},
	log.InfoLevel:  {"INF", "#04B575"},
	log.WarnLevel:  {"WRN", "#EE6FF8"},
	log.ErrorLevel: {"ERR", "#FF6B6B"},
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

func newStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl, s := range levelStyles {
		color := lipgloss.AdaptiveColor{Light: s.color, Dark: s.color}
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(s.symbol).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
		styles.Keys[lvl.String()] = lipgloss.NewStyle().Foreground(color)
		styles.Values[lvl.String()] = lipgloss.NewStyle().Bold(true)
	}
	muted := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
	for _, key := range []string{"error", "context", "service"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(muted)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// newLogger builds the process logger and installs it as the slog default.
func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", Prefix: "[vmadmin]"}
	}
	formatter, ok := formatters[cfg.Format]
	if !ok {
		formatter = log.TextFormatter
	}
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	l.SetStyles(newStyles())

	logger := slog.New(l)
	slog.SetDefault(logger)
	return logger
}
