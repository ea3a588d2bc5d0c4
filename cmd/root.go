package cmd

import (
	"context"

	"github.com/olimci/versionguard/pkg/version"
	"github.com/urfave/cli/v3"
)

// Commands:
// init
//   creates the store with a default config.toml
//
// status
//   derives the protection state from disk (--verbose shows the evidence)
//
// protect / unprotect
//   locks configure.ini and creates the update blockers, or undoes both
//
// delete <version>...
//   removes installed version directories, stopping at the first failure
//
// switch <version>
//   points ProductInfo.xml and configure.ini at another installed version
//
// run
//   precheck, delete, clean caches and protect in one sequence
//
// versions, precheck, cache size, cache clean, validate, uninstall, version

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "versionguard",
		Usage:   "keep an installed application on the version you choose",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show resolved paths and extra detail",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the response record as JSON",
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			statusCommand(),
			protectCommand(),
			unprotectCommand(),
			deleteCommand(),
			switchCommand(),
			runCommand(),
			versionsCommand(),
			precheckCommand(),
			cacheCommand(),
			validateCommand(),
			uninstallCommand(),
			versionCommand(),
		},
	}
}

func Execute(ctx context.Context, args []string) error {
	return newApp().Run(ctx, args)
}
