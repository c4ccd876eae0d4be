package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/notegen/internal/build"
	"git.home.luguber.info/inful/notegen/internal/logfields"
	"git.home.luguber.info/inful/notegen/internal/vault"
)

var CLI struct {
	InputDir  string `arg:"" help:"Vault directory to read notes from."`
	OutputDir string `arg:"" help:"Directory to write the generated site to."`

	Overwrite    bool     `help:"Allow deleting an existing output directory before running."`
	IgnoreOutput []string `placeholder:"PATH" help:"Top-level relative path under the output directory to preserve when overwriting. Repeatable."`
	SiteTitle    string   `env:"NOTEGEN_SITE_TITLE" default:"Notes" help:"Title to use for the generated site."`
	StaticDir    string   `env:"NOTEGEN_STATIC_DIR" help:"Directory of static assets to copy to <output>/static."`
	LogLevel     string   `enum:",DEBUG,INFO,WARNING,ERROR,CRITICAL" default:"" help:"Set log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)."`
	Verbose      int      `short:"v" type:"counter" help:"Increase verbosity (use -v for DEBUG)."`
	Quiet        int      `short:"q" type:"counter" help:"Reduce output (use -q for ERROR, -qq for CRITICAL)."`
}

// resolveLogLevel maps the CLI flags to a slog level. An explicit --log-level
// wins over the -v/-q counters; the default is warnings and up.
func resolveLogLevel(explicit string, verbose, quiet int) slog.Level {
	switch explicit {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	case "CRITICAL":
		return slog.LevelError + 4
	}

	level := slog.LevelWarn
	if verbose > 0 {
		level = slog.LevelDebug
	}
	if quiet == 1 {
		level = slog.LevelError
	} else if quiet >= 2 {
		level = slog.LevelError + 4
	}
	return level
}

// exitCode distinguishes precondition failures a caller can act on (existing
// output, bad directories) from everything else.
func exitCode(err error) int {
	if errors.Is(err, build.ErrOutputDirExists) ||
		errors.Is(err, vault.ErrOutputExists) ||
		errors.Is(err, vault.ErrNotADirectory) {
		return 2
	}
	return 1
}

func main() {
	_ = godotenv.Load()
	kong.Parse(&CLI,
		kong.Name("notegen"),
		kong.Description("Generate a static site from a vault of markdown notes."),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: resolveLogLevel(CLI.LogLevel, CLI.Verbose, CLI.Quiet),
	})))

	err := build.Run(build.Options{
		InputDir:     CLI.InputDir,
		OutputDir:    CLI.OutputDir,
		Overwrite:    CLI.Overwrite,
		IgnoreOutput: CLI.IgnoreOutput,
		SiteTitle:    CLI.SiteTitle,
		StaticDir:    CLI.StaticDir,
	})
	if err != nil {
		slog.Error("Build failed", logfields.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
