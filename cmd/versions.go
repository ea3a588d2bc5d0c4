package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func versionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "versions",
		Aliases: []string{"ls"},
		Usage:   "list installed and archived versions",
		Action:  versionsAction,
	}
}

func versionsAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	versions, err := sess.scanVersions()
	if err != nil {
		return err
	}
	if isJSON(cmd) {
		return printJSON(cmd, versions)
	}

	w := output(cmd)
	if len(versions) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no versions found"))
		return nil
	}
	for _, v := range versions {
		marker := " "
		label := v.Label
		if v.Active {
			marker = "*"
			label = okStyle.Render(label)
		}
		line := fmt.Sprintf("%s %s", marker, label)
		if !v.HasExecutable {
			line += " " + warnStyle.Render("(no "+sess.cfg.App.Executable+")")
		}
		if isVerbose(cmd) {
			line += "  " + dimStyle.Render(v.Path)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
