package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play one narrated game"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games and report statistics"`
	Watch    WatchCmd         `cmd:"" help:"Step through a game interactively"`
	Serve    ServeCmd         `cmd:"" help:"Stream games to websocket spectators"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("warsim"),
		kong.Description("Simulator for the card game War"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
