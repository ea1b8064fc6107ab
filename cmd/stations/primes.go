package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/internal/ints"
	"github.com/tahsin716/stations/split"
)

func newPrimesCmd(a *app) *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "primes FILE...",
		Short: "keep the primes of newline-separated integer files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunks, err := ints.ReadFiles(cmd.Context(), args, chunkSize)
			if err != nil {
				return err
			}

			st, err := stations.New(a.stationOptions()...)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			cfg := st.Config()
			a.log.Debugf("primes: %d chunks, admission %s, max queue depth %d",
				len(chunks), cfg.AdmissionPolicy, cfg.MaxQueueDepth)
			fmt.Fprintf(out, "Number of threads are %d.\n", cfg.ThreadCount)
			fmt.Fprintf(out, "Each chunk has %d integers.\n", chunkSize)

			for i := range chunks {
				if err := st.Submit(func() { ints.KeepPrimes(&chunks[i]) }); err != nil {
					return err
				}
			}
			if _, err := st.Join(); err != nil {
				return err
			}

			var primes []int
			split.Join(&primes, chunks)
			fmt.Fprintf(out, "Found %d primes.\n", len(primes))
			return nil
		},
	}
	cmd.Flags().IntVar(&chunkSize, "read-chunk", ints.DefaultChunkSize, "integers per chunk read from a file")
	return cmd
}
