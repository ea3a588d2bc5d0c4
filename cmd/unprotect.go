package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

func unprotectCommand() *cli.Command {
	return &cli.Command{
		Name:   "unprotect",
		Usage:  "remove the blockers and the config lock",
		Action: unprotectAction,
	}
}

func unprotectAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	res := sess.engine.Remove()
	return finish(cmd, res, res.Logs, res.Success, res.Error)
}
