package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/urfave/cli/v3"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func renderLine(line string) string {
	switch oplog.LevelOf(line) {
	case oplog.LevelOK:
		return okStyle.Render(line)
	case oplog.LevelWarn:
		return warnStyle.Render(line)
	default:
		return line
	}
}

func printLogs(cmd *cli.Command, lines []string) {
	w := output(cmd)
	for _, line := range lines {
		fmt.Fprintln(w, renderLine(line))
	}
}

func yesNo(v bool) string {
	if v {
		return okStyle.Render("yes")
	}
	return dimStyle.Render("no")
}
