package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/urfave/cli/v3"
)

type validation struct {
	Config      string   `json:"config"`
	App         string   `json:"app"`
	Root        string   `json:"root"`
	AppsFound   bool     `json:"apps_found"`
	ArchiveDirs []string `json:"archive_dirs,omitempty"`
	Missing     []string `json:"missing_archive_dirs,omitempty"`
	Versions    int      `json:"versions"`
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "check the config and the installation paths it resolves to",
		Action: validateAction,
	}
}

func validateAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	l, err := sess.engine.Layout()
	if err != nil {
		return err
	}

	res := validation{
		Config:      sess.store.ConfigPath(),
		App:         sess.cfg.App.Name,
		Root:        l.Root,
		ArchiveDirs: sess.cfg.Versions.ArchiveDirs,
	}
	if res.AppsFound, err = fileutils.Exists(sess.fs, l.Apps); err != nil {
		return err
	}
	for _, dir := range sess.cfg.Versions.ArchiveDirs {
		if ok, _ := fileutils.Exists(sess.fs, dir); !ok {
			res.Missing = append(res.Missing, dir)
		}
	}
	versions, err := sess.scanVersions()
	if err != nil {
		return err
	}
	res.Versions = len(versions)

	if isJSON(cmd) {
		return printJSON(cmd, res)
	}

	w := output(cmd)
	fmt.Fprintf(w, "validated %s (%s in %s, %d version(s))\n", res.Config, res.App, res.Root, res.Versions)
	if !res.AppsFound {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("[!] %s not found", l.Apps)))
	}
	for _, dir := range res.Missing {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("[!] archive directory %s not found", dir)))
	}
	return nil
}
