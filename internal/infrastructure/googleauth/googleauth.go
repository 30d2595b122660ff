package googleauth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"

	"drivegallery/internal/infrastructure/config"
)

// ErrNoCredentials is returned when neither a service account nor an
// OAuth client is configured.
var ErrNoCredentials = errors.New("no Google credentials configured")

// Mode selects the authentication strategy chosen at startup.
type Mode string

const (
	ModeServiceAccount Mode = "service_account"
	ModeOAuth          Mode = "oauth"
)

// Credentials is the process-wide credential handle. It is built once
// at startup and never mutated afterwards.
type Credentials struct {
	Mode Mode

	// TokenSource is nil in OAuth mode when no refresh token has been
	// obtained yet; the auth-url flow exists to bootstrap one.
	TokenSource oauth2.TokenSource

	// Identity is the account remote folders must be shared with for
	// write access. The service-account email when known.
	Identity string

	// OAuthConfig is set in OAuth mode and drives the auth-url and
	// callback endpoints.
	OAuthConfig *oauth2.Config
}

// Load selects and initializes the authentication strategy from
// configuration. A service account takes precedence over an OAuth
// client when both are present.
func Load(ctx context.Context, cfg *config.Config) (*Credentials, error) {
	if cfg.HasServiceAccount() {
		return loadServiceAccount(ctx, cfg)
	}
	if cfg.HasOAuthClient() {
		return loadOAuth(ctx, cfg), nil
	}
	return nil, ErrNoCredentials
}

func loadServiceAccount(ctx context.Context, cfg *config.Config) (*Credentials, error) {
	data := []byte(cfg.ServiceAccountJSON)
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account key: %w", err)
		}
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, driveapi.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	return &Credentials{
		Mode:        ModeServiceAccount,
		TokenSource: jwtConfig.TokenSource(ctx),
		Identity:    jwtConfig.Email,
	}, nil
}

func loadOAuth(ctx context.Context, cfg *config.Config) *Credentials {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		Scopes: []string{
			driveapi.DriveFileScope,
			driveapi.DriveScope,
		},
		Endpoint: google.Endpoint,
	}

	creds := &Credentials{
		Mode:        ModeOAuth,
		Identity:    "the connected Google account",
		OAuthConfig: oauthConfig,
	}

	if cfg.GoogleRefreshToken != "" {
		token := &oauth2.Token{
			RefreshToken: cfg.GoogleRefreshToken,
			TokenType:    "Bearer",
		}
		creds.TokenSource = oauthConfig.TokenSource(ctx, token)
	}

	return creds
}
