package main

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"drivegallery/internal/application/gallery"
	"drivegallery/internal/delivery/http/handler"
	"drivegallery/internal/delivery/http/router"
	"drivegallery/internal/infrastructure/config"
	"drivegallery/internal/infrastructure/googleauth"
	"drivegallery/internal/infrastructure/repository"
	"drivegallery/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.PrettyLog)

	// Select the authentication strategy
	creds, err := googleauth.Load(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to load Google credentials")
	}
	logger.Log.Info().Str("mode", string(creds.Mode)).Msg("authentication configured")

	handlers := router.Handlers{
		OAuth: handler.NewOAuthHandler(creds.OAuthConfig),
	}

	// Without a token source (OAuth mode before the bootstrap flow has
	// run) only the auth-url and callback routes are served.
	if creds.TokenSource != nil {
		driveService, err := drive.NewService(ctx, option.WithTokenSource(creds.TokenSource))
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to create drive service")
		}

		repo := repository.NewDriveRepository(driveService, creds.Identity)
		svc := gallery.NewService(repo, logger.Log)

		handlers.Drive = handler.NewDriveHandler(svc)
		handlers.Gallery = handler.NewGalleryHandler(svc)
	} else {
		logger.Log.Warn().Msg("no refresh token configured; drive routes disabled, visit /api/drive/auth-url to obtain one")
	}

	mux := router.Setup(handlers, cfg.StaticDir)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Log.Info().Str("addr", addr).Str("static", cfg.StaticDir).Msg("server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Log.Fatal().Err(err).Msg("server stopped")
	}
}
