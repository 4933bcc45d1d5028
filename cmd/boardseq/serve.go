package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"boardseq/internal/config"
	"boardseq/internal/server"
	"boardseq/internal/util"
)

type serveFlags struct {
	port    int
	devMode bool
	dataDir string
	open    bool
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info := loadConfig()
			applyServeFlags(cfg, info, f)
			return serve(cfg, f.open)
		},
	}
	cmd.Flags().IntVar(&f.port, "port", 0, "listen port (ignored when config.toml sets port)")
	cmd.Flags().BoolVar(&f.devMode, "dev", false, "development mode")
	cmd.Flags().StringVar(&f.dataDir, "dataDir", "", "data directory (overrides config)")
	cmd.Flags().BoolVar(&f.open, "open", false, "open the status endpoint in a browser")
	return cmd
}

// applyServeFlags command line overrides on top of the loaded config
func applyServeFlags(cfg *config.AppConfig, info config.LoadConfigInfo, f serveFlags) {
	if f.port > 0 && !info.PortSpecified {
		cfg.Server.Port = f.port
	}
	if f.devMode {
		cfg.Server.DevMode = true
	}
	if f.dataDir != "" {
		cfg.Data.DataDir = f.dataDir
	}
}

func serve(cfg *config.AppConfig, open bool) error {
	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("data dir: %s\n", config.ResolveDataDir(cfg))
	if opts, err := cfg.Sequencing.Options(); err == nil {
		fmt.Printf("layout: %s, classification %s, row order %s\n", opts.Layout.Describe(), opts.Classification, opts.RowOrder)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("listening on %s ...\n", addr)
		errCh <- srv.Run(addr)
	}()

	if open {
		url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)
		if err := util.OpenWithFallback(url); err != nil {
			fmt.Printf("could not open a browser, visit %s\n", url)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		_ = srv.Shutdown(context.Background())
		return err
	case <-quit:
	}

	fmt.Println("shutting down ...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
		return err
	}
	return nil
}
