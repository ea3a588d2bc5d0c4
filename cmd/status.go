package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/versionguard/pkg/guard"
	"github.com/urfave/cli/v3"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "show whether the application is protected",
		Action: statusAction,
	}
}

func statusAction(_ context.Context, cmd *cli.Command) error {
	if err := noArgs(cmd); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	if !isVerbose(cmd) {
		status := sess.engine.Status()
		if isJSON(cmd) {
			return printJSON(cmd, status)
		}
		renderStatus(cmd, status)
		return nil
	}

	report, err := sess.engine.Inspect()
	if err != nil {
		return err
	}
	if isJSON(cmd) {
		return printJSON(cmd, report)
	}
	renderStatus(cmd, report.Status)
	renderReport(cmd, report)
	return nil
}

func renderStatus(cmd *cli.Command, status guard.Status) {
	w := output(cmd)
	if status.IsProtected {
		fmt.Fprintln(w, okStyle.Render("Protected"))
	} else {
		fmt.Fprintln(w, warnStyle.Render("Not protected"))
	}
	fmt.Fprintf(w, "  config locked:   %s\n", yesNo(status.ConfigLocked))
	fmt.Fprintf(w, "  blockers exist:  %s\n", yesNo(status.BlockersExist))
}

func renderReport(cmd *cli.Command, report guard.Report) {
	w := output(cmd)
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Installation"))
	fmt.Fprintf(w, "  root:  %s\n", report.Root)
	fmt.Fprintf(w, "  apps:  %s\n", report.Apps)

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Blockers"))
	for _, b := range report.Blockers {
		fmt.Fprintf(w, "  %-8s %s\n", b.State, b.Path)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Versions"))
	fmt.Fprintf(w, "  configure.ini:    %s\n", orNone(report.ConfigVersion))
	fmt.Fprintf(w, "  ProductInfo.xml:  %s\n", orNone(report.ActiveVersion))
	if report.ActivePath != "" {
		fmt.Fprintf(w, "  executable:       %s\n", report.ActivePath)
	}
}

func orNone(s string) string {
	if s == "" {
		return dimStyle.Render("(none)")
	}
	return s
}
