package tokens

import (
	"context"
	"net/url"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// clientSecretStrategy implements the plain client-credentials grant used
// by EMRs that issue a shared client secret.
type clientSecretStrategy struct {
	Log *zap.Logger
}

func NewClientSecretStrategy(logger *zap.Logger) AuthStrategy {
	return &clientSecretStrategy{Log: logger}
}

func (s *clientSecretStrategy) Grant(ctx context.Context, credential *models.ResolvedCredential, tokenURL string) (*contracts.AccessToken, error) {
	scopes := credential.Scopes
	if scopes == "" {
		scopes = constvars.DefaultScopesClientSecret
	}

	form := url.Values{}
	form.Set("grant_type", constvars.OAuthGrantTypeClientCredentials)
	form.Set("client_id", credential.ClientID)
	form.Set("client_secret", credential.ClientSecret)
	form.Set("scope", scopes)

	return postTokenRequest(ctx, s.Log, tokenURL, form)
}
