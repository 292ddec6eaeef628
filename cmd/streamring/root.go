package main

import (
	"github.com/spf13/cobra"

	"github.com/streamring/streamring/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "streamring",
		Short: "Drive a bounded in-memory ring buffer over a seekable file",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults are used if omitted)")

	root.AddCommand(newCatCmd())
	root.AddCommand(newSeekCmd())
	return root
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		cfg := config.Default()
		cfg.Enable = true
		return cfg, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}
