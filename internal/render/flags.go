package render

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cauldron/models"
)

// Flags are the options of the render command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "render a saved HTML page instead of fetching a URL"},
		&cli.StringFlag{Name: "base-url", Usage: "URL used to resolve relative links in --file"},
		&cli.StringFlag{Name: "format", Value: "text", Usage: "output format: text, yaml or json"},
		&cli.BoolFlag{Name: "load-images", Aliases: []string{"i"}, Usage: "fetch and decode every image"},
		&cli.IntFlag{Name: "max-concurrent", Usage: "maximum image loads in flight, 0 for unbounded"},
		&cli.StringFlag{Name: "image-cache", Usage: "directory for cached image bytes"},
		&cli.DurationFlag{Name: "timeout", Value: models.DefaultFetchTimeout, Usage: "HTTP timeout per request"},
		&cli.BoolFlag{Name: "detect-language", Usage: "guess the document language"},
		&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: "write output to a file in this directory"},
		&cli.StringFlag{Name: "db", Usage: "history database path"},
		&cli.BoolFlag{Name: "no-history", Usage: "do not record renders and image loads"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "disable logging"},
		&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
	}
}
