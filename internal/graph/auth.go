package graph

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenRefreshMargin refreshes cached tokens five minutes before expiry.
const tokenRefreshMargin = 5 * time.Minute

// NewTokenSource builds a cached Azure AD client-credentials token source for
// the Graph API. The cache lives on the returned source, not in package
// state, so callers own its lifetime.
func NewTokenSource(ctx context.Context, tenantID, clientID, clientSecret string) oauth2.TokenSource {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	return oauth2.ReuseTokenSourceWithExpiry(nil, cfg.TokenSource(ctx), tokenRefreshMargin)
}
