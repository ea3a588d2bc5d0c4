package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "inspect or empty the application caches",
		Commands: []*cli.Command{
			{
				Name:   "size",
				Usage:  "show cache sizes",
				Action: cacheSizeAction,
			},
			{
				Name:  "clean",
				Usage: "empty the cache directories",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "skip the running process check",
					},
				},
				Action: cacheCleanAction,
			},
		},
	}
}

func cacheSizeAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	l, err := sess.engine.Layout()
	if err != nil {
		return err
	}

	report, err := sess.cleaner.Size(l)
	if err != nil {
		return err
	}
	if isJSON(cmd) {
		return printJSON(cmd, report)
	}

	w := output(cmd)
	for _, entry := range report.Entries {
		size := humanize.Bytes(uint64(entry.Bytes))
		if !entry.Exists {
			size = dimStyle.Render("missing")
		}
		fmt.Fprintf(w, "  %-10s %s\n", size, entry.Name)
		printPaths(cmd, "path", entry.Path)
	}
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("total"), humanize.Bytes(uint64(report.Total)))
	return nil
}

type cleanResult struct {
	Success bool     `json:"success"`
	Logs    []string `json:"logs"`
}

func cacheCleanAction(ctx context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	if err := sess.ensureNotRunning(ctx, cmd); err != nil {
		return err
	}
	l, err := sess.engine.Layout()
	if err != nil {
		return err
	}

	logs := sess.cleaner.Clean(l)
	return finish(cmd, cleanResult{Success: true, Logs: logs}, logs, true, "")
}
