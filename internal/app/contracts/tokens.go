package contracts

import (
	"context"

	"emr-gateway-service/internal/app/models"
)

// AccessToken is the bearer token minted by the EMR's authorization server.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	Scope     string `json:"scope,omitempty"`
}

// TokenAcquirer exchanges a resolved credential for an access token using
// whichever OAuth2 grant the credential's auth method selects.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context, credential *models.ResolvedCredential) (*AccessToken, error)
}
