package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "delete installed versions",
		ArgsUsage: "<version>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "skip the running process check",
			},
		},
		Action: deleteAction,
	}
}

func deleteAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("delete requires at least one version argument")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	if err := sess.ensureNotRunning(ctx, cmd); err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := sess.resolveVersion(arg)
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}
	printPaths(cmd, "deleting", paths...)

	res := sess.engine.DeleteVersions(paths)
	return finish(cmd, res, res.Logs, res.Success, res.Error)
}
