package cmd

import (
	"context"
	"fmt"

	storepkg "github.com/olimci/versionguard/pkg/store"
	"github.com/urfave/cli/v3"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "create the versionguard config",
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	store, err := storepkg.DefaultStore()
	if err != nil {
		return err
	}

	if store.IsInstalled() {
		return fmt.Errorf("versionguard is already installed in %s", store.Root)
	}

	if err := store.Install(); err != nil {
		return err
	}

	fmt.Fprintf(output(cmd), "initialized versionguard store in %s\n", store.Root)
	printPaths(cmd, "created", store.ConfigPath())
	return nil
}
