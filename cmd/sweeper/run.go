package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/sweeper"
	"github.com/viant/sweeper/tracing"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <sweep>...",
		Short: "Run one or more sweeps",
		Long: `Run every trial of the named sweeps. Each trial writes the program's stdout
to <result-dir>/<dataset>-<algorithm>-<servers>-<replicas>-<nodes>; an existing
file is overwritten. Interrupting stops admission and terminates running trials.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer tracing.Shutdown(context.Background())

			var options []sweeper.Option
			if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
				options = append(options, sweeper.WithProgressListener(printProgress))
			}
			srv, err := newService(ctx, options...)
			if err != nil {
				return err
			}
			for _, name := range args {
				if _, err := srv.Plan(ctx, name); err != nil {
					return err
				}
			}
			if info, err := srv.Probe(ctx); err == nil && info.Oversubscribed(srv.Config().Gate.Capacity) {
				printWarning("capacity %d exceeds %d CPUs on %s", srv.Config().Gate.Capacity, info.CPUs, info.Hostname)
			}

			for _, name := range args {
				report, err := srv.Run(ctx, name)
				if report != nil {
					printReport(os.Stdout, report)
				}
				if errors.Is(err, context.Canceled) {
					color.New(color.FgRed).Printf("sweep %s interrupted\n", name)
					return err
				}
				if err != nil {
					return fmt.Errorf("sweep %s: %w", name, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("progress", false, "print run counters to stderr on every change")
	return cmd
}
