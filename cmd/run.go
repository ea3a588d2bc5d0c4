package cmd

import (
	"context"

	"github.com/olimci/versionguard/pkg/guard"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringSliceFlag{
			Name:    "delete",
			Aliases: []string{"d"},
			Usage:   "version to delete before protecting (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "clean-cache",
			Usage: "empty the cache directories",
		},
	}, protectFlags()...)

	return &cli.Command{
		Name:   "run",
		Usage:  "check, delete, clean and protect in one go",
		Flags:  flags,
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	var paths []string
	for _, arg := range cmd.StringSlice("delete") {
		path, err := sess.resolveVersion(arg)
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}

	apply := sess.applyOptions(cmd)
	res := sess.engine.RunFullProtection(ctx, guard.ProtectionParams{
		VersionsToDelete: paths,
		CleanCache:       cmd.Bool("clean-cache"),
		LockConfig:       apply.LockConfig,
		CreateBlockers:   apply.CreateBlockers,
	})
	return finish(cmd, res, res.Logs, res.Success, res.Error)
}
