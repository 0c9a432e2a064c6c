package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgrid/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")

	chainPreRun(root, func(cmd *cobra.Command, args []string) error {
		c.SetLogLevel(logLevel(verbose, quiet))
		return nil
	})

	return root.ExecuteContext(ctx)
}

func logLevel(verbose, quiet bool) log.Level {
	switch {
	case verbose:
		return cli.LogDebug
	case quiet:
		return cli.LogWarn
	default:
		return cli.LogInfo
	}
}

// chainPreRun prepends fn to the command's persistent pre-run so flag
// state is applied before any existing hook fires.
func chainPreRun(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	next := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := fn(c, args); err != nil {
			return err
		}
		if next != nil {
			return next(c, args)
		}
		return nil
	}
}
