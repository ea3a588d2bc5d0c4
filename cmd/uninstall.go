package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/versionguard/pkg/store"
	"github.com/urfave/cli/v3"
)

func uninstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "uninstall",
		Usage: "remove the versionguard config",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unprotect",
				Usage: "remove protection before uninstalling",
			},
		},
		Action: uninstallAction,
	}
}

func uninstallAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	s, err := store.DefaultStore()
	if err != nil {
		return err
	}

	if !s.IsInstalled() {
		return fmt.Errorf("versionguard is not installed")
	}

	if cmd.Bool("unprotect") {
		sess, err := openSession()
		if err != nil {
			return err
		}
		res := sess.engine.Remove()
		printLogs(cmd, res.Logs)
		if !res.Success {
			return fmt.Errorf("remove protection: %s", res.Error)
		}
	}

	if err := s.Uninstall(); err != nil {
		return err
	}
	printPaths(cmd, "removed", s.Root)

	fmt.Fprintf(output(cmd), "uninstalled versionguard store from %s\n", s.Root)
	return nil
}
