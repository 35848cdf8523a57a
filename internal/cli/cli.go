// Package cli implements zfixture's command-line subcommands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zfixture/internal/config"
	"github.com/zarlcorp/zfixture/internal/dispatch"
	"github.com/zarlcorp/zfixture/internal/export"
	"github.com/zarlcorp/zfixture/internal/identity"
	"github.com/zarlcorp/zfixture/internal/logs"
	"golang.org/x/term"
)

// Usage is printed for unknown commands and non-interactive bare runs.
const Usage = `usage: zfixture <command> [flags]

commands:
  generate   generate a batch of users (-n, -w, -f, -o, --log-level, --log-format)
  user       generate one user (--json)
  version    print the version

with no command on a terminal, zfixture starts the interactive UI.
`

// Interactive reports whether stdin and stdout are both terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// CmdGenerate generates a batch of users and writes it to stdout or to the
// configured output file. A one-line summary goes to stderr.
func CmdGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, os.Environ, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := logs.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = dispatch.DefaultWorkers()
	}

	started := time.Now()
	users, err := identity.GenerateUserData(ctx, cfg.Count,
		dispatch.WithWorkers(workers),
		dispatch.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	elapsed := time.Since(started)

	fmt.Fprintf(stderr, "generated %s users in %s (%d workers)\n",
		humanize.Comma(int64(len(users))), elapsed.Round(time.Millisecond), workers)

	if cfg.Output == "" {
		return export.Write(stdout, cfg.Format, users)
	}

	size, err := writeOutput(cfg.Output, cfg.Format, users)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %s to %s\n", humanize.Bytes(uint64(size)), cfg.Output)
	return nil
}

// writeOutput writes the batch to a file rooted at its parent directory and
// returns the file size.
func writeOutput(output string, f export.Format, users []identity.User) (int64, error) {
	dir, name := filepath.Split(output)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	if err := export.WriteFile(fsys, name, f, users); err != nil {
		return 0, err
	}

	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		return 0, fmt.Errorf("stat output: %w", err)
	}
	return info.Size(), nil
}

// CmdUser generates and prints one user.
func CmdUser(args []string, stdout io.Writer) error {
	g, err := identity.New()
	if err != nil {
		return err
	}
	u, err := g.Generate()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if hasFlag(args, "--json") {
		return printJSON(stdout, u)
	}
	printUser(stdout, u)
	return nil
}

func printUser(w io.Writer, u identity.User) {
	fmt.Fprintf(w, "  id:       %s\n", u.UserID)
	fmt.Fprintf(w, "  username: %s\n", u.UserName)
	fmt.Fprintf(w, "  name:     %s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(w, "  age:      %d\n", u.Age)
	fmt.Fprintf(w, "  email:    %s\n", u.EmailAddress)
	fmt.Fprintf(w, "  phone:    %s\n", u.PhoneNumber)
	fmt.Fprintf(w, "  address:  %s %s, %s %s, %s\n",
		u.Address.StreetName, u.Address.HouseNumber, u.Address.PostCode, u.Address.City, u.Address.Country)
	fmt.Fprintf(w, "  ipv4:     %s\n", u.Device.IPv4Address)
	fmt.Fprintf(w, "  ipv6:     %s\n", u.Device.IPv6Address)
	fmt.Fprintf(w, "  mac:      %s\n", u.Device.MACAddress)
	fmt.Fprintf(w, "  device:   %s\n", u.Device.DeviceUUID)
	fmt.Fprintf(w, "  platform: %s\n", u.Device.SystemTriplet)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}
