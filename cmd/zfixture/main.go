package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zfixture/internal/cli"
	"github.com/zarlcorp/zfixture/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zfixture"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	var err error
	if len(os.Args) > 1 {
		err = runCLI(ctx, os.Args[1], os.Args[2:])
	} else if cli.Interactive() {
		err = runTUI(ctx)
	} else {
		fmt.Fprint(os.Stderr, cli.Usage)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "zfixture: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "version":
		fmt.Printf("zfixture %s\n", version)
		return nil
	case "generate":
		return cli.CmdGenerate(ctx, args, os.Stdout, os.Stderr)
	case "user":
		return cli.CmdUser(args, os.Stdout)
	case "help", "-h", "--help":
		fmt.Print(cli.Usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, cli.Usage)
}

func runTUI(ctx context.Context) error {
	p := tea.NewProgram(tui.New(ctx, version), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
