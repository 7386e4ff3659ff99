package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/habiliai/memorybank"
	"github.com/habiliai/memorybank/internal/mylog"
	"github.com/spf13/cobra"
)

func newServeCmd(rootParams *rootParams) *cobra.Command {
	params := &struct {
		Port int
	}{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the memory HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			conf, err := rootParams.loadConfig()
			if err != nil {
				return err
			}
			if params.Port != 0 {
				conf.Server.Port = params.Port
			}

			logger := mylog.NewLogger(conf.Log.LogLevel, conf.Log.LogHandler)

			bank, err := memorybank.New(ctx,
				memorybank.WithLogger(logger),
				memorybank.WithLogConfig(conf.Log),
				memorybank.WithMemoryConfig(conf.Memory),
				memorybank.WithModelConfig(conf.Model),
			)
			if err != nil {
				return err
			}
			defer func() {
				if err := bank.Close(); err != nil {
					logger.Warn("failed to close memory bank", "error", err)
				}
			}()

			handler := createServerHandler(bank, logger)

			addr := fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port)
			logger.Info("server started", "addr", addr)
			defer logger.Info("server stopped")

			server := &http.Server{
				Addr:    addr,
				Handler: handler,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			go func() {
				<-ctx.Done()
				if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
					logger.Error("failed to shutdown server", "error", err)
				}
			}()

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&params.Port, "port", "p", 0, "Port to listen on (overrides config)")

	return cmd
}
