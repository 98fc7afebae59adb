package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// executeWithFang runs cmd through fang and exits with status 1 on error.
// Failed commands write nothing to stdout.
func executeWithFang(cmd *cobra.Command) {
	if err := runWithFang(context.Background(), cmd, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func runWithFang(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	return fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(versioninfo.Short()),
		fang.WithErrorHandler(usageErrorHandler(cmd, args)),
	)
}

// usageErrorHandler prints err, then the usage of the command args name for
// argument and flag mistakes, or a pointer to --help for everything else.
func usageErrorHandler(root *cobra.Command, args []string) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		_, _ = fmt.Fprintln(w, styles.ErrorHeader.String())
		_, _ = fmt.Fprintln(w, styles.ErrorText.Render(err.Error()+"."))
		_, _ = fmt.Fprintln(w)

		if !isUsageError(err) {
			_, _ = fmt.Fprintln(w, lipgloss.JoinHorizontal(
				lipgloss.Left,
				styles.ErrorText.UnsetWidth().Render("Try"),
				styles.Program.Flag.Render("--help"),
				styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
			))
			_, _ = fmt.Fprintln(w)
			return
		}

		cmd := root
		if c, _, err := root.Find(args); err == nil {
			cmd = c
		}

		// Usage goes to the error stream, downsampled to what it supports.
		cmd.SetOut(colorprofile.NewWriter(w, os.Environ()))
		if help := cmd.HelpFunc(); help != nil {
			help(cmd, nil)
		}
	}
}

// isUsageError reports whether err comes from how the command line was
// written rather than from the data it names.
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts",
		"arg(s), received",
		"missing limb",
		"invalid limb l",
		"failed to load config file",
	} {
		if strings.Contains(s, prefix) {
			return true
		}
	}
	return false
}
