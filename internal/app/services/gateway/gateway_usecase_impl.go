package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"emr-gateway-service/internal/app/config"
	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/app/services/emr"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/dto/requests"
	"emr-gateway-service/internal/pkg/dto/responses"
	"emr-gateway-service/internal/pkg/exceptions"
	"emr-gateway-service/internal/pkg/mapper"
	"emr-gateway-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type gatewayUsecase struct {
	Log                  *zap.Logger
	CredentialResolver   contracts.CredentialResolver
	CredentialRepository contracts.HospitalCredentialRepository
	TokenAcquirer        contracts.TokenAcquirer
	Dispatcher           contracts.EMRDispatcher
	AuditRecorder        contracts.AuditRecorder
	DocumentStorage      contracts.DocumentStorage
	InternalConfig       *config.InternalConfig
}

func NewGatewayUsecase(
	logger *zap.Logger,
	credentialResolver contracts.CredentialResolver,
	credentialRepository contracts.HospitalCredentialRepository,
	tokenAcquirer contracts.TokenAcquirer,
	dispatcher contracts.EMRDispatcher,
	auditRecorder contracts.AuditRecorder,
	documentStorage contracts.DocumentStorage,
	internalConfig *config.InternalConfig,
) GatewayUsecase {
	return &gatewayUsecase{
		Log:                  logger,
		CredentialResolver:   credentialResolver,
		CredentialRepository: credentialRepository,
		TokenAcquirer:        tokenAcquirer,
		Dispatcher:           dispatcher,
		AuditRecorder:        auditRecorder,
		DocumentStorage:      documentStorage,
		InternalConfig:       internalConfig,
	}
}

// Execute runs one clinical operation end to end: resolve the hospital's
// credential, mint a fresh token, perform the single upstream request, and
// flatten the result. Exactly one audit record is emitted per call, success
// or failure.
func (uc *gatewayUsecase) Execute(ctx context.Context, userID string, request *requests.ExecuteEMR) (result interface{}, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	defer func() {
		uc.recordAudit(ctx, userID, request, err)
	}()

	if !emr.IsSupported(request.Operation) {
		return nil, exceptions.ErrUnknownOperation(request.Operation)
	}

	credential, err := uc.CredentialResolver.Resolve(ctx, request.HospitalID)
	if err != nil {
		return nil, err
	}

	if request.Operation == constvars.OperationHealthCheck {
		return uc.probeHealth(ctx, credential)
	}

	token, err := uc.TokenAcquirer.AcquireToken(ctx, credential)
	if err != nil {
		uc.markDownOnAuthFailure(ctx, request.HospitalID, err)
		return nil, err
	}

	dispatchResult, err := uc.Dispatcher.Dispatch(ctx, credential, token, request.Operation, request.Params)
	if err != nil {
		return nil, err
	}

	spec, _ := emr.SpecFor(request.Operation)
	mapped, entryErrs, err := mapper.MapResponse(spec.MapKind, dispatchResult.Body, spec.Collection)
	if err != nil {
		return nil, exceptions.ErrDecodeUpstreamBody(err, spec.Resource)
	}
	for _, entryErr := range entryErrs {
		uc.Log.Warn("gatewayUsecase.Execute skipped malformed bundle entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHospitalIDKey, request.HospitalID),
			zap.String(constvars.LoggingOperationKey, request.Operation),
			zap.Error(entryErr),
		)
	}

	if request.Operation == constvars.OperationGetDocuments {
		mapped = uc.offloadDocumentAttachments(ctx, request.HospitalID, mapped)
	}

	return mapped, nil
}

// HospitalHealth reads the stored probe outcome without touching the EMR.
func (uc *gatewayUsecase) HospitalHealth(ctx context.Context, hospitalID string) (*responses.HospitalHealth, error) {
	credential, err := uc.CredentialRepository.FindActiveByHospitalID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, exceptions.ErrHospitalNotConfigured(hospitalID)
	}

	health := &responses.HospitalHealth{
		HospitalID: credential.HospitalID,
		Status:     credential.HealthStatus,
	}
	if health.Status == "" {
		health.Status = constvars.HealthStatusDegraded
	}
	if !credential.LastHealthCheckAt.IsZero() {
		health.CheckedAt = credential.LastHealthCheckAt.UTC().Format(time.RFC3339)
	}
	return health, nil
}

// probeHealth uses the token grant itself as the connectivity probe: one
// POST to the token endpoint, and the outcome is persisted either way.
func (uc *gatewayUsecase) probeHealth(ctx context.Context, credential *models.ResolvedCredential) (*responses.HospitalHealth, error) {
	checkedAt := time.Now().UTC()
	status := constvars.HealthStatusHealthy

	_, err := uc.TokenAcquirer.AcquireToken(ctx, credential)
	if err != nil {
		if exceptions.StatusOf(err) != constvars.StatusBadGateway {
			return nil, err
		}
		status = constvars.HealthStatusDown
	}

	if updateErr := uc.CredentialRepository.UpdateHealthStatus(ctx, credential.HospitalID, status, checkedAt); updateErr != nil {
		uc.Log.Error("gatewayUsecase.probeHealth error persisting health status",
			zap.String(constvars.LoggingHospitalIDKey, credential.HospitalID),
			zap.Error(updateErr),
		)
	}

	return &responses.HospitalHealth{
		HospitalID: credential.HospitalID,
		Status:     status,
		CheckedAt:  checkedAt.Format(time.RFC3339),
	}, nil
}

// markDownOnAuthFailure flips the stored health flag when the token
// endpoint rejects the gateway, so the dashboard sees the outage without
// probing. Clinical-call failures mirror upstream and never touch health.
func (uc *gatewayUsecase) markDownOnAuthFailure(ctx context.Context, hospitalID string, err error) {
	if exceptions.StatusOf(err) != constvars.StatusBadGateway {
		return
	}
	if updateErr := uc.CredentialRepository.UpdateHealthStatus(ctx, hospitalID, constvars.HealthStatusDown, time.Now().UTC()); updateErr != nil {
		uc.Log.Error("gatewayUsecase.markDownOnAuthFailure error persisting health status",
			zap.String(constvars.LoggingHospitalIDKey, hospitalID),
			zap.Error(updateErr),
		)
	}
}

const auditPublishTimeout = 5 * time.Second

func (uc *gatewayUsecase) recordAudit(ctx context.Context, userID string, request *requests.ExecuteEMR, err error) {
	// The request context may already be past its deadline when the
	// operation failed on timeout; the audit write still has to go out.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditPublishTimeout)
	defer cancel()

	record := &models.AuditRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		HospitalID: request.HospitalID,
		PatientID:  auditPatientID(request.Params),
		Action:     constvars.AuditActionPrefix + strings.ToUpper(request.Operation),
		Outcome:    constvars.AuditOutcomeSuccess,
		Timestamp:  time.Now().UTC(),
	}
	if err != nil {
		record.Outcome = constvars.AuditOutcomeError
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			record.ErrorMessage = customErr.DevMessage
		} else {
			record.ErrorMessage = err.Error()
		}
	}
	uc.AuditRecorder.Record(auditCtx, record)
}

func auditPatientID(params map[string]interface{}) string {
	if patientID := utils.ParamString(params, constvars.ParamPatientID); patientID != "" {
		return patientID
	}
	return utils.ParamString(params, constvars.ParamID)
}

// offloadDocumentAttachments replaces inline base64 payloads with
// short-lived object storage links. Offload failures degrade to the inline
// document; they never fail the operation.
func (uc *gatewayUsecase) offloadDocumentAttachments(ctx context.Context, hospitalID string, mapped interface{}) interface{} {
	documents, ok := mapped.([]interface{})
	if !ok {
		return mapped
	}

	bucketName := uc.InternalConfig.Minio.BucketName
	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour

	for i, item := range documents {
		document, ok := item.(responses.Document)
		if !ok || document.AttachmentData == "" || document.URL != "" {
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(document.AttachmentData)
		if err != nil {
			uc.Log.Warn("gatewayUsecase.offloadDocumentAttachments invalid base64 attachment",
				zap.String(constvars.LoggingHospitalIDKey, hospitalID),
				zap.Error(err),
			)
			continue
		}

		objectName := hospitalID + "/" + document.ID + "/" + uuid.NewString()
		_, err = uc.DocumentStorage.UploadBase64Document(ctx, decoded, bucketName, objectName, document.ContentType)
		if err != nil {
			uc.Log.Warn("gatewayUsecase.offloadDocumentAttachments upload failed",
				zap.String(constvars.LoggingHospitalIDKey, hospitalID),
				zap.Error(err),
			)
			continue
		}

		presignedURL, err := uc.DocumentStorage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
		if err != nil {
			uc.Log.Warn("gatewayUsecase.offloadDocumentAttachments presign failed",
				zap.String(constvars.LoggingHospitalIDKey, hospitalID),
				zap.Error(err),
			)
			continue
		}

		document.URL = presignedURL
		documents[i] = document
	}
	return documents
}
