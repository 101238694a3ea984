package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/propvest/propvest/pkg/config"
)

func setupLogger(cfg *config.Log) *slog.Logger {
	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           log.Level(cfg.Level),
		Formatter:       formatter,
	})

	slogger := slog.New(logger)
	slog.SetDefault(slogger)

	return slogger
}
