package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Summarise the result directory into a CSV table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			srv, err := newService(ctx)
			if err != nil {
				return err
			}
			rows, err := srv.Aggregate(ctx)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Printf("\nThere are no results in %s\n\n", srv.ResultDir())
				return nil
			}
			printRows(os.Stdout, rows)
			if URL := srv.Config().Sink.SummaryURL; URL != "" {
				fmt.Printf("\nSummary written to %s\n", URL)
			}
			return nil
		},
	}
	return cmd
}

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Display host details relevant to sweep capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			srv, err := newService(ctx)
			if err != nil {
				return err
			}
			info, err := srv.Probe(ctx)
			if err != nil {
				printWarning("probe degraded: %v", err)
			}
			printHost(os.Stdout, info, srv.Config().Gate.Capacity)
			return nil
		},
	}
	return cmd
}
