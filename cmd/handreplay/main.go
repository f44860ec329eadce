package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Replay a hand fixture step by step"`
	Batch   BatchCmd         `cmd:"" help:"Replay a directory of fixtures and report the outcomes"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handreplay"),
		kong.Description("Replay recorded poker hands and settle their pots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}
