// Package emr turns named clinical operations into FHIR requests against a
// hospital's EMR and translates upstream failures into the gateway's error
// envelope.
package emr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"
	"emr-gateway-service/internal/pkg/fhir_dto"
	"emr-gateway-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type emrDispatcher struct {
	Log                     *zap.Logger
	RequestTimeoutInSeconds int
}

func NewEMRDispatcher(logger *zap.Logger, requestTimeoutInSeconds int) contracts.EMRDispatcher {
	return &emrDispatcher{
		Log:                     logger,
		RequestTimeoutInSeconds: requestTimeoutInSeconds,
	}
}

// Dispatch executes exactly one upstream request. Unknown operations fail
// before any traffic leaves the process.
func (d *emrDispatcher) Dispatch(ctx context.Context, credential *models.ResolvedCredential, token *contracts.AccessToken, operation string, params map[string]interface{}) (*contracts.DispatchResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	spec, ok := SpecFor(operation)
	if !ok {
		return nil, exceptions.ErrUnknownOperation(operation)
	}

	requestURL, err := d.buildURL(spec, credential.BaseURL, params)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	contentType := ""
	if spec.Body != nil {
		payload, payloadType, err := spec.Body(params)
		if err != nil {
			return nil, err
		}
		bodyJSON, err := json.Marshal(payload)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		bodyReader = bytes.NewBuffer(bodyJSON)
		contentType = payloadType
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, requestURL, bodyReader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token.Token)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if contentType != "" {
		req.Header.Set(constvars.HeaderContentType, contentType)
	}

	d.Log.Info("emrDispatcher.Dispatch sending request",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHospitalIDKey, credential.HospitalID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.String(constvars.LoggingResourceKey, spec.Resource),
	)

	client := &http.Client{Timeout: time.Duration(d.RequestTimeoutInSeconds) * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrDecodeUpstreamBody(err, spec.Resource)
	}

	if resp.StatusCode >= constvars.StatusBadRequest {
		d.Log.Warn("emrDispatcher.Dispatch upstream error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHospitalIDKey, credential.HospitalID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, translateUpstreamError(resp.StatusCode, spec.Resource, bodyBytes)
	}

	return &contracts.DispatchResult{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
	}, nil
}

func (d *emrDispatcher) buildURL(spec OperationSpec, baseURL string, params map[string]interface{}) (string, error) {
	requestURL := strings.TrimSuffix(baseURL, "/") + "/" + spec.Resource
	if spec.ByID {
		id := utils.ParamString(params, constvars.ParamID)
		if id == "" {
			return "", exceptions.ErrMissingParam(constvars.ParamID)
		}
		requestURL += "/" + id
	}
	if spec.Query != nil {
		query, err := spec.Query(params)
		if err != nil {
			return "", err
		}
		requestURL += "?" + query.Encode()
	}
	return requestURL, nil
}

// translateUpstreamError converts a FHIR failure into the gateway envelope.
// The status mirrors upstream so the dashboard can distinguish a missing
// patient from a broken connection; the first OperationOutcome issue
// supplies the client-facing message and code, and the full outcome rides
// along as details.
func translateUpstreamError(statusCode int, resource string, body []byte) *exceptions.CustomError {
	customErr := exceptions.WrapWithoutError(statusCode, constvars.ErrClientEMRRequestFailed, fmt.Sprintf(constvars.ErrDevUpstreamFHIR, statusCode, resource))

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(body, &outcome); err == nil && len(outcome.Issue) > 0 {
		issue := outcome.Issue[0]
		customErr.Code = issue.Code
		if issue.Diagnostics != "" {
			customErr.ClientMessage = issue.Diagnostics
		} else if issue.Details != nil && issue.Details.Text != "" {
			customErr.ClientMessage = issue.Details.Text
		}
		customErr.Details = outcome
	}
	return customErr
}
