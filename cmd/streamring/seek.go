package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamring/streamring"
	"github.com/streamring/streamring/logging"
	"github.com/streamring/streamring/source"
)

func newSeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seek <file> <offset>",
		Short: "Read from the start, then seek to offset and read a block, logging how the seek was resolved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Logging.Level = "debug"

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

			warm := make([]byte, 4096)
			if _, err := filter.Read(warm); err != nil {
				return fmt.Errorf("warm-up read: %w", err)
			}

			if err := filter.SetPosition(offset); err != nil {
				return fmt.Errorf("set position: %w", err)
			}

			block := make([]byte, 4096)
			n, err := filter.Read(block)
			if err != nil {
				return fmt.Errorf("read after seek: %w", err)
			}

			fmt.Fprintf(os.Stdout, "read %d bytes at position %d (reported position now %d)\n", n, offset, filter.Position())
			return nil
		},
	}
}
