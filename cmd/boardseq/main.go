package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"boardseq/internal/config"
)

const version = "boardseq v1.0"

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boardseq",
		Short:         "Bus boarding sequence generator",
		Long:          `Reads a bookings workbook and prints the order in which bookings should board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config.toml path (defaults to the one next to the executable)")
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}, newServeCmd(), newSequenceCmd(), newInitCmd())
	return root
}

// loadConfig config from --config or the executable directory; falls back to defaults
func loadConfig() (*config.AppConfig, config.LoadConfigInfo) {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if configPath == "" {
		cfg, info, err = config.LoadConfigWithInfo()
	} else {
		cfg, info, err = config.LoadConfigFrom(configPath)
	}
	if err != nil {
		log.Printf("load config failed, using defaults: %v", err)
		return config.DefaultConfig(), config.LoadConfigInfo{Path: info.Path}
	}
	return cfg, info
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
