// README: Operator CLI; runs the venue pipeline or wishlist generation locally and benchmarks a running API.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"vamu/internal/infra"
)

type CLI struct {
	JSON    bool `help:"Print JSON instead of a table."`
	Verbose bool `help:"Enable debug logging." env:"VAMU_VERBOSE"`

	Where    WhereCmd    `cmd:"" help:"Suggest venues for a description."`
	Wishlist WishlistCmd `cmd:"" help:"Suggest wishlist items for an event."`
	Bench    BenchCmd    `cmd:"" help:"Run checks and load against a running API."`
}

// Context is passed to every command's Run.
type Context struct {
	Out  io.Writer
	Err  io.Writer
	JSON bool
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("inspire"),
		kong.Description("Venue inspiration operator tool."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := zerolog.WarnLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	infra.InitLogger("inspire", "development", level.String())

	runCtx := &Context{Out: os.Stdout, Err: os.Stderr, JSON: cli.JSON}
	if err := kctx.Run(runCtx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
