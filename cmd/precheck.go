package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

func precheckCommand() *cli.Command {
	return &cli.Command{
		Name:   "precheck",
		Usage:  "check that the application is installed and not running",
		Action: precheckAction,
	}
}

func precheckAction(ctx context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	check := sess.engine.Precheck(ctx)
	if isJSON(cmd) {
		return printJSON(cmd, check)
	}

	w := output(cmd)
	fmt.Fprintf(w, "installed:  %s\n", yesNo(check.AppFound))
	if check.AppRunning {
		fmt.Fprintf(w, "running:    %s\n", errStyle.Render("yes"))
	} else {
		fmt.Fprintf(w, "running:    %s\n", dimStyle.Render("no"))
	}
	printPaths(cmd, "apps directory", check.AppsPath)

	if check.Error != "" {
		return errors.New(check.Error)
	}
	return nil
}
