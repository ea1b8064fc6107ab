package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/internal/ints"
	"github.com/tahsin716/stations/parallel"
	"github.com/tahsin716/stations/split"
)

func newCountCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "count",
		Short: "benchmark count_if over random integers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			xs := ints.Random(n, a.seed)

			opts := a.stationOptions()
			if a.cfg.Station.ChunkSize == 0 {
				opts = append(opts, stations.WithChunkSize(max(1, n/100)))
			}

			start := time.Now()
			count, err := parallel.CountIf[int](split.Slice[int](xs), ints.EvenSquareNegative, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Total: %f with count %d\n", time.Since(start).Seconds(), count)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "ints", 10_000_000, "number of integers to scan")
	return cmd
}
