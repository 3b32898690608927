package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cauldron/internal/history"
	"github.com/dtnitsch/cauldron/internal/render"
)

func main() {
	app := &cli.App{
		Name:  "cauldron",
		Usage: "render web articles as structured documents",
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "fetch an article and render its main content",
				ArgsUsage: "<url>",
				Flags:     render.Flags(),
				Action:    render.RenderAction,
			},
			{
				Name:   "history",
				Usage:  "show recent renders and image loads",
				Flags:  history.Flags(),
				Action: history.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
