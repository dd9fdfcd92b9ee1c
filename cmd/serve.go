package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pharmanear/m/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PharmaNear HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		port := a.cfg.HTTPPort
		if p, _ := cmd.Flags().GetString("port"); p != "" {
			port = p
		}

		handler := api.New(a.svc, api.Options{
			Secret:         a.cfg.Secret,
			AllowedOrigins: a.cfg.AllowedOrigins,
		}, a.log)
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			a.log.Infof("PharmaNear server starting on :%s", port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "", "HTTP port (overrides config)")
}
