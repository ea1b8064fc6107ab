package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/tahsin716/stations/internal/ints"
	"github.com/tahsin716/stations/parallel"
	"github.com/tahsin716/stations/split"
)

func newSortCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "sort random integers and verify the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			xs := ints.Random(n, a.seed)

			start := time.Now()
			err := parallel.Sort[int](split.Slice[int](xs), a.stationOptions()...)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total number of ints sorted are %d\n", len(xs))
			fmt.Fprintf(out, "Sorting duration was %f seconds.\n", elapsed.Seconds())

			if !slices.IsSorted(xs) {
				fmt.Fprintln(out, "NOT SORTED")
				return fmt.Errorf("result is not sorted")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "ints", 1_000_000, "number of integers to sort")
	return cmd
}
