package main

import (
	"log/slog"
	"os"

	"statmeme/meme"
	"statmeme/parallel"

	"github.com/alecthomas/kong"
)

var cli struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Workers  int    `help:"Number of parallel workers for batch runs, 0 for one per CPU" default:"0"`

	Meme  meme.CLICmd   `cmd:"" help:"Create the four panel selection bias meme from a picture"`
	Batch meme.BatchCmd `cmd:"" help:"Create a meme for every picture in a folder"`
	Mask  meme.MaskCmd  `cmd:"" help:"Write only the letter mask"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("statmeme"),
		kong.Description("Illustrate selection bias: a letter shaped hole cut into a stippled picture."),
		kong.UsageOnError(),
		kong.DefaultEnvars("STATMEME"),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
