package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/api"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				board, err := e.store.LoadBoard(ctx)
				if err != nil {
					return err
				}

				toggler := e.toggler()
				toggler.Load(ctx)

				save := func() error { return e.store.SaveBoard(context.Background(), board) }
				s := api.NewServer(board, save, toggler, e.filter(), e.logger)
				s.Reload = e.store.LoadBoard

				if addr == "" {
					addr = e.cfg.Server.Addr
				}
				srv := &http.Server{
					Addr:              addr,
					Handler:           s.Handler(),
					ReadHeaderTimeout: 10 * time.Second,
				}

				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				errCh := make(chan error, 1)
				go func() {
					e.logger.Info("listening", "addr", addr, "db", e.cfg.DBPath)
					errCh <- srv.ListenAndServe()
				}()

				select {
				case err := <-errCh:
					if errors.Is(err, http.ErrServerClosed) {
						return nil
					}
					return fmt.Errorf("serving %s: %w", addr, err)
				case <-ctx.Done():
				}

				e.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	return cmd
}
