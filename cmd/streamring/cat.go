package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/streamring/streamring"
	"github.com/streamring/streamring/logging"
	"github.com/streamring/streamring/source"
)

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file>",
		Short: "Stream a file through the ring buffer to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			src, err := source.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer src.Close()

			log := logging.New(cfg.Logging)
			filter, err := streamring.Open(context.Background(), src, cfg, log)
			if err != nil {
				return fmt.Errorf("open ring filter: %w", err)
			}
			defer filter.Close()

			_, err = io.Copy(os.Stdout, filter)
			return err
		},
	}
}
