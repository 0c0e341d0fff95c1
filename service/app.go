package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"yatube/app/auth"
	"yatube/app/logger"
	"yatube/app/routes"
	"yatube/config"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// server is told to stop.
const shutdownTimeout = 10 * time.Second

// RunAppServer serves the application until ctx is cancelled, then shuts
// down gracefully.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	tokens, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return fmt.Errorf("%w (set YATUBE_AUTH_SECRET)", err)
	}

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close stores")
		}
	}()

	router := routes.SetupRoutes(routes.Dependencies{
		DB:     st.db,
		Pages:  st.pages,
		Images: st.images,
		Tokens: tokens,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("driver", cfg.Database.Driver).Msg("starting yatube")
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

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
