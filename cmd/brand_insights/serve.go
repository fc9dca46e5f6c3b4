package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/brand-insights/internal/server"
	"github.com/jonathan/brand-insights/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveWatch    bool
	serveDebounce time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only JSON API server",
	Long:  `Start an HTTP server that exposes every insight as JSON. With --watch, edits to the data directory trigger a reload.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload when input documents change")
	serveCmd.Flags().DurationVar(&serveDebounce, "debounce", server.DefaultDebounce, "Quiet period before a watched change triggers a reload")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DataDir:     a.cfg.DataDir,
		Roster:      a.cfg.Roster(),
		Options:     a.options(),
		CORSOrigins: a.cfg.Server.CORSOrigins,
		RateLimit:   ratelimit.LoadConfig(),
	}, a.log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		w, err := server.NewWatcher(a.cfg.DataDir, serveDebounce, srv.Reload, a.log)
		if err != nil {
			srv.Close()
			return err
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			srv.Close()
			return err
		}
		defer w.Stop()
	}

	return srv.Start(ctx)
}
