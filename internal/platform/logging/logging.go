package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

type Options struct {
	Name   string
	Level  string
	Format string
	Output io.Writer
}

// New builds the root logger. Unknown levels fall back to info.
func New(opts Options) hclog.Logger {
	level := hclog.LevelFromString(strings.TrimSpace(opts.Level))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	name := opts.Name
	if name == "" {
		name = "focusguard"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.Format == "json",
	})
}

// OrDiscard returns logger, or a logger that drops everything when nil.
func OrDiscard(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
