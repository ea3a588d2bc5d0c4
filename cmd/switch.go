package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func switchCommand() *cli.Command {
	return &cli.Command{
		Name:      "switch",
		Usage:     "make another installed version the active one",
		ArgsUsage: "<version|path>",
		Action:    switchAction,
	}
}

func switchAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	target := cmd.Args().First()

	if target == "" {
		return fmt.Errorf("switch requires a version argument")
	}
	if len(args) > 1 {
		return fmt.Errorf("switch accepts exactly one version argument")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	path, err := sess.resolveVersion(target)
	if err != nil {
		return err
	}

	res := sess.engine.SwitchVersion(path)
	if err := finish(cmd, res, res.Logs, res.Success, res.Message); err != nil {
		return err
	}
	if !isJSON(cmd) {
		fmt.Fprintln(output(cmd), okStyle.Render(res.Message))
	}
	return nil
}
