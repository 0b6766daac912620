package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/hustleadmin/internal/flagx"
)

var ownFlags = []string{"-a", "-s", "-e", "-l", "-p"}

// parseFlags populates Config from the flags it owns; other arguments are
// filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("hustleadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local store")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for CSV exports")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.DefaultPageSize, "p", cfg.DefaultPageSize, "default page size")

	return fs.Parse(flagx.FilterArgs(args, ownFlags))
}
