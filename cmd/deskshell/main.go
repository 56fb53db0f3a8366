package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/deskshell/cmd/deskshell/commands"
)

const (
	cmdName   = "deskshell"
	shortDesc = "Sandboxed application-data commands for the desktop shell."
	longDesc  = `DeskShell exposes a small command surface to the desktop front-end.

Commands read and write files confined to the per-application data
directory and report the host operating system. They are served over
HTTP and WebSocket, or run one at a time from this CLI.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
