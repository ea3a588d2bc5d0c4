package cmd

import (
	"context"

	"github.com/olimci/versionguard/pkg/guard"
	"github.com/urfave/cli/v3"
)

func protectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-lock",
			Usage: "do not pin last_version in configure.ini",
		},
		&cli.BoolFlag{
			Name:  "no-blockers",
			Usage: "do not create the update blockers",
		},
	}
}

func protectCommand() *cli.Command {
	return &cli.Command{
		Name:   "protect",
		Usage:  "lock the config and block the updater",
		Flags:  protectFlags(),
		Action: protectAction,
	}
}

func protectAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	res := sess.engine.Apply(sess.applyOptions(cmd))
	if l, err := sess.engine.Layout(); err == nil && res.Success {
		printPaths(cmd, "protected paths", append([]string{l.ConfigPath()}, l.BlockerPaths()...)...)
	}
	return finish(cmd, res, res.Logs, res.Success, res.Error)
}

// applyOptions starts from the configured defaults and applies --no-lock and
// --no-blockers.
func (s *session) applyOptions(cmd *cli.Command) guard.ApplyOptions {
	return guard.ApplyOptions{
		LockConfig:     s.cfg.Protection.LockConfig && !cmd.Bool("no-lock"),
		CreateBlockers: s.cfg.Protection.CreateBlockers && !cmd.Bool("no-blockers"),
	}
}
