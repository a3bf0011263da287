package nutri

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		readTimeout, err := cfg.Server.ReadTimeoutDuration()
		if err != nil {
			return err
		}
		shutdownTimeout, err := cfg.Server.ShutdownTimeoutDuration()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withDB(func(sqldb *sql.DB) error {
			srv := httpapi.New(sqldb, logger, httpapi.Options{
				CORSOrigins:  cfg.Server.CORSOrigins,
				DefaultUnits: cfg.Units,
			})
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx, addr, readTimeout, shutdownTimeout)
			})
			g.Go(func() error {
				<-gctx.Done()
				if ctx.Err() != nil {
					logger.Info("shutdown requested", zap.Error(context.Cause(ctx)))
				}
				return nil
			})
			return g.Wait()
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}
