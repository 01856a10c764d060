package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/binforge/cmd"
	"github.com/lepinkainen/binforge/types"
)

var Version = "dev"

type CLI struct {
	Generate cmd.GenerateCmd `cmd:"" default:"withargs" help:"Fill a directory with randomly sized files of random bytes"`
	Plan     cmd.PlanCmd     `cmd:"" help:"Show the partition plan without writing any files"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("binforge"),
		kong.Description("Concurrent random binary file generator"))
	err := ctx.Run(&types.AppContext{Version: Version})
	ctx.FatalIfErrorf(err)
}
