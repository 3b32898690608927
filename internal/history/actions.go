package history

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/dtnitsch/cauldron/internal/common"
	"github.com/dtnitsch/cauldron/pkg/db"
)

// Flags are the options of the history command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
		&cli.StringFlag{Name: "db", Usage: "history database path"},
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "rows to show per table"},
		&cli.BoolFlag{Name: "images", Usage: "show image loads only"},
	}
}

func HistoryAction(c *cli.Context) (err error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { err = multierr.Append(err, database.Close()) }()

	w := c.App.Writer
	limit := c.Int("limit")

	if !c.Bool("images") {
		renders, err := database.RecentRenders(limit)
		if err != nil {
			return err
		}
		if len(renders) == 0 {
			fmt.Fprintln(w, "No renders found")
		} else {
			fmt.Fprintf(w, "%-16s %-8s %-8s %-6s %-40s\n", "Rendered", "Blocks", "Images", "Lang", "Title")
			fmt.Fprintln(w, strings.Repeat("-", 82))
			for _, r := range renders {
				fmt.Fprintf(w, "%-16s %-8d %-8d %-6s %-40s\n",
					humanize.Time(r.CreatedAt), r.BlockCount, r.ImageCount, r.Language, truncate(r.Title, 40))
			}
			fmt.Fprintln(w)
		}
	}

	loads, err := database.RecentImageLoads(limit)
	if err != nil {
		return err
	}
	if len(loads) == 0 {
		fmt.Fprintln(w, "No image loads found")
		return nil
	}
	fmt.Fprintf(w, "%-16s %-10s %-11s %s\n", "Loaded", "State", "Size", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 82))
	for _, l := range loads {
		size := l.Reason
		if l.State == "succeeded" {
			size = fmt.Sprintf("%dx%d", l.Width, l.Height)
		}
		fmt.Fprintf(w, "%-16s %-10s %-11s %s\n", humanize.Time(l.CreatedAt), l.State, truncate(size, 11), l.URL)
	}
	return nil
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
