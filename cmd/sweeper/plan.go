package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <sweep>",
		Short: "Display the trials of a sweep without running them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			srv, err := newService(ctx)
			if err != nil {
				return err
			}
			planned, err := srv.Plan(ctx, args[0])
			if err != nil {
				return err
			}
			printPlan(os.Stdout, planned)
			fmt.Printf("\n%d trials, at most %d at once\n", len(planned), srv.Config().Gate.Capacity)
			existing := 0
			for _, p := range planned {
				if p.Exists {
					existing++
				}
			}
			if existing > 0 {
				printWarning("%d existing outputs in %s would be overwritten", existing, srv.ResultDir())
			}
			return nil
		},
	}
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display a table of configured and preset sweeps",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newService(context.Background())
			if err != nil {
				return err
			}
			return printSweeps(os.Stdout, srv)
		},
	}
	return cmd
}
