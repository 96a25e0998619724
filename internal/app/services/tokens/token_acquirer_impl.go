// Package tokens exchanges hospital credentials for EMR access tokens.
// Tokens are acquired fresh for every request: nothing here persists or
// caches secret-derived material.
package tokens

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// AuthStrategy performs one OAuth2 grant against a derived token endpoint.
type AuthStrategy interface {
	Grant(ctx context.Context, credential *models.ResolvedCredential, tokenURL string) (*contracts.AccessToken, error)
}

type tokenAcquirer struct {
	Log        *zap.Logger
	Strategies map[string]AuthStrategy
}

func NewTokenAcquirer(logger *zap.Logger, assertionLifetimeInSeconds int) contracts.TokenAcquirer {
	return &tokenAcquirer{
		Log: logger,
		Strategies: map[string]AuthStrategy{
			constvars.AuthMethodClientSecret: NewClientSecretStrategy(logger),
			constvars.AuthMethodJWTBearer:    NewJwtBearerStrategy(logger, assertionLifetimeInSeconds),
		},
	}
}

func (a *tokenAcquirer) AcquireToken(ctx context.Context, credential *models.ResolvedCredential) (*contracts.AccessToken, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	tokenURL, err := TokenEndpoint(credential.Vendor, credential.BaseURL)
	if err != nil {
		return nil, err
	}

	strategy, ok := a.Strategies[credential.AuthMethod]
	if !ok {
		return nil, exceptions.WrapWithoutError(constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, "credential auth method "+credential.AuthMethod+" has no grant strategy")
	}

	a.Log.Info("tokenAcquirer.AcquireToken requesting token",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHospitalIDKey, credential.HospitalID),
		zap.String(constvars.LoggingVendorKey, credential.Vendor),
	)

	token, err := strategy.Grant(ctx, credential, tokenURL)
	if err != nil {
		a.Log.Error("tokenAcquirer.AcquireToken grant failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHospitalIDKey, credential.HospitalID),
			zap.Error(err),
		)
		return nil, err
	}
	return token, nil
}

// postTokenRequest sends the form-encoded grant and decodes the token
// response. Non-2xx answers surface as a 502 carrying the upstream body in
// the dev message only.
func postTokenRequest(ctx context.Context, log *zap.Logger, tokenURL string, form url.Values) (*contracts.AccessToken, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.ErrUpstreamAuth(string(bodyBytes))
	}

	token := new(contracts.AccessToken)
	err = json.NewDecoder(resp.Body).Decode(token)
	if err != nil {
		return nil, exceptions.ErrDecodeUpstreamBody(err, "token")
	}
	return token, nil
}
