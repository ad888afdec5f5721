package main

import (
	"fmt"
	"io"
	"os"

	"github.com/capsaicin/security-gate/internal/gate"
	"github.com/capsaicin/security-gate/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	exitCode := gate.ExitOK

	cmd := newRootCommand(stdout, stderr, &exitCode)
	// cobra falls back to os.Args when given nil
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		ui.NewPrinter(stderr).Error("%s", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return gate.ExitUsage
	}
	return exitCode
}
