package contracts

import (
	"context"

	"emr-gateway-service/internal/app/models"
)

// DispatchResult is the raw upstream outcome of one clinical operation.
type DispatchResult struct {
	StatusCode int
	Body       []byte
}

// EMRDispatcher executes exactly one FHIR request against the hospital's
// EMR for a named clinical operation.
type EMRDispatcher interface {
	Dispatch(ctx context.Context, credential *models.ResolvedCredential, token *AccessToken, operation string, params map[string]interface{}) (*DispatchResult, error)
}
