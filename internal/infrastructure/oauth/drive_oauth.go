package oauth

import (
	"context"
	"fmt"
	"time"

	"flightlog-reconciler/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// DriveOAuth issues read-only Google Drive credentials from a stored refresh token
type DriveOAuth struct {
	config       *oauth2.Config
	refreshToken string
	logger       logger.Logger
}

// NewDriveOAuth creates a new Drive OAuth handler
func NewDriveOAuth(clientID, clientSecret, refreshToken string, logger logger.Logger) *DriveOAuth {
	return &DriveOAuth{
		config:       NewDriveConfig(clientID, clientSecret, ""),
		refreshToken: refreshToken,
		logger:       logger,
	}
}

// NewDriveConfig returns the OAuth client config for read-only Drive access
func NewDriveConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{drive.DriveReadonlyScope},
	}
}

// TokenSource returns a token source for the Drive API. The first call
// exchanges the refresh token for an access token.
func (o *DriveOAuth) TokenSource(ctx context.Context) oauth2.TokenSource {
	token := &oauth2.Token{
		RefreshToken: o.refreshToken,
		Expiry:       time.Now(), // Force refresh
	}

	return o.config.TokenSource(ctx, token)
}

// AuthURL returns the consent URL that yields an offline refresh token
func (o *DriveOAuth) AuthURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a token
func (o *DriveOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	o.logger.Info("Drive refresh token obtained")
	return token, nil
}
