package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dashforge/internal/journal"
	"dashforge/internal/llm"
	"dashforge/internal/task"
	"dashforge/internal/web"
	"dashforge/internal/workflow"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Start the dashboard generation API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			controllers, err := buildControllers(cfg)
			if err != nil {
				return err
			}

			var recorder *journal.Recorder
			if cfg.Journal.Path != "" {
				db, err := journal.Open(cfg.Journal.Path)
				if err != nil {
					return err
				}
				defer db.Close()
				recorder = journal.NewRecorder(db)
				log.Info().Str("path", cfg.Journal.Path).Msg("run journal enabled")
			}

			store := task.NewStore()
			svc := workflow.NewService(store, controllers, cfg.Defaults.Provider, recorder)
			srv := web.NewServer(svc, store, llm.Models(cfg))

			httpServer := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("server shutdown failed")
				}
			}()

			log.Info().Str("addr", cfg.Server.Addr).Str("provider", cfg.Defaults.Provider).Msg("listening")
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
