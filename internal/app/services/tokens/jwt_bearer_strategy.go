package tokens

import (
	"context"
	"net/url"
	"time"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// jwtBearerStrategy implements the SMART Backend Services flow: the client
// proves possession of a registered RSA key by sending a short-lived signed
// assertion instead of a shared secret.
type jwtBearerStrategy struct {
	Log                        *zap.Logger
	AssertionLifetimeInSeconds int
}

func NewJwtBearerStrategy(logger *zap.Logger, assertionLifetimeInSeconds int) AuthStrategy {
	return &jwtBearerStrategy{
		Log:                        logger,
		AssertionLifetimeInSeconds: assertionLifetimeInSeconds,
	}
}

func (s *jwtBearerStrategy) Grant(ctx context.Context, credential *models.ResolvedCredential, tokenURL string) (*contracts.AccessToken, error) {
	assertion, err := s.signAssertion(credential, tokenURL)
	if err != nil {
		return nil, err
	}

	scopes := credential.Scopes
	if scopes == "" {
		scopes = constvars.DefaultScopesSystem
	}

	form := url.Values{}
	form.Set("grant_type", constvars.OAuthGrantTypeClientCredentials)
	form.Set("scope", scopes)
	form.Set("client_assertion_type", constvars.OAuthClientAssertionTypeJWT)
	form.Set("client_assertion", assertion)

	return postTokenRequest(ctx, s.Log, tokenURL, form)
}

func (s *jwtBearerStrategy) signAssertion(credential *models.ResolvedCredential, tokenURL string) (string, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(credential.PrivateKey))
	if err != nil {
		return "", exceptions.ErrParsePrivateKey(err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": credential.ClientID,
		"sub": credential.ClientID,
		"aud": tokenURL,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.AssertionLifetimeInSeconds) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS384, claims)
	signed, err := token.SignedString(privateKey)
	if err != nil {
		return "", exceptions.ErrSignAssertion(err)
	}
	return signed, nil
}
