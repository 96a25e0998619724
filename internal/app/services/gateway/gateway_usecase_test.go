package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"emr-gateway-service/internal/app/config"
	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/dto/requests"
	"emr-gateway-service/internal/pkg/dto/responses"
	"emr-gateway-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver struct {
	credential *models.ResolvedCredential
	err        error
}

func (f *fakeResolver) Resolve(ctx context.Context, hospitalID string) (*models.ResolvedCredential, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.credential, nil
}

type fakeCredentialRepo struct {
	credential   *models.HospitalCredential
	healthCalls  []string
	healthStatus string
}

func (f *fakeCredentialRepo) FindActiveByHospitalID(ctx context.Context, hospitalID string) (*models.HospitalCredential, error) {
	return f.credential, nil
}

func (f *fakeCredentialRepo) UpdateHealthStatus(ctx context.Context, hospitalID, status string, checkedAt time.Time) error {
	f.healthCalls = append(f.healthCalls, hospitalID)
	f.healthStatus = status
	return nil
}

type fakeAcquirer struct {
	token *contracts.AccessToken
	err   error
	calls int
}

func (f *fakeAcquirer) AcquireToken(ctx context.Context, credential *models.ResolvedCredential) (*contracts.AccessToken, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

type fakeDispatcher struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, credential *models.ResolvedCredential, token *contracts.AccessToken, operation string, params map[string]interface{}) (*contracts.DispatchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &contracts.DispatchResult{StatusCode: constvars.StatusOK, Body: f.body}, nil
}

type fakeAuditRecorder struct {
	records []*models.AuditRecord
	ctxErrs []error
}

func (f *fakeAuditRecorder) Record(ctx context.Context, record *models.AuditRecord) {
	f.records = append(f.records, record)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
}

type fakeDocumentStorage struct {
	uploads int
	url     string
	err     error
}

func (f *fakeDocumentStorage) UploadBase64Document(ctx context.Context, encodedData []byte, bucketName, objectName, contentType string) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return objectName, nil
}

func (f *fakeDocumentStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type usecaseFixture struct {
	resolver   *fakeResolver
	repo       *fakeCredentialRepo
	acquirer   *fakeAcquirer
	dispatcher *fakeDispatcher
	audit      *fakeAuditRecorder
	storage    *fakeDocumentStorage
	usecase    GatewayUsecase
}

func newFixture() *usecaseFixture {
	f := &usecaseFixture{
		resolver: &fakeResolver{
			credential: &models.ResolvedCredential{
				HospitalID: "hosp-1",
				Vendor:     constvars.VendorGeneric,
				BaseURL:    "https://fhir.example.org",
				ClientID:   "client-1",
				AuthMethod: constvars.AuthMethodClientSecret,
			},
		},
		repo:       &fakeCredentialRepo{},
		acquirer:   &fakeAcquirer{token: &contracts.AccessToken{Token: "tok"}},
		dispatcher: &fakeDispatcher{},
		audit:      &fakeAuditRecorder{},
		storage:    &fakeDocumentStorage{url: "https://minio.example.org/presigned"},
	}
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{BucketName: "emr-documents", PreSignedUrlObjectExpiryTimeInHours: 1},
	}
	f.usecase = NewGatewayUsecase(zap.NewNop(), f.resolver, f.repo, f.acquirer, f.dispatcher, f.audit, f.storage, internalConfig)
	return f
}

func TestExecuteGetPatient(t *testing.T) {
	f := newFixture()
	f.dispatcher.body = []byte(`{"resourceType":"Patient","id":"p42","name":[{"family":"Doe","given":["Jane"]}],"birthDate":"1980-01-01","gender":"female"}`)

	result, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetPatient,
		Params:     map[string]interface{}{constvars.ParamID: "p42"},
	})
	require.NoError(t, err)

	patient, ok := result.(responses.Patient)
	require.True(t, ok)
	assert.Equal(t, "p42", patient.ID)
	assert.Equal(t, "Jane", patient.FirstName)
	assert.Equal(t, "Doe", patient.LastName)
	assert.Equal(t, "1980-01-01", patient.DOB)
	assert.Equal(t, "female", patient.Gender)
	assert.True(t, patient.Active)

	require.Len(t, f.audit.records, 1)
	record := f.audit.records[0]
	assert.Equal(t, "user-7", record.UserID)
	assert.Equal(t, "hosp-1", record.HospitalID)
	assert.Equal(t, "p42", record.PatientID)
	assert.Equal(t, "EMR_GET_PATIENT", record.Action)
	assert.Equal(t, constvars.AuditOutcomeSuccess, record.Outcome)
}

func TestExecuteUnknownOperationAudited(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  "export_everything",
	})
	require.Error(t, err)

	assert.Zero(t, f.dispatcher.calls)
	assert.Zero(t, f.acquirer.calls)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, constvars.AuditOutcomeError, f.audit.records[0].Outcome)
}

func TestExecuteHospitalNotConfiguredAudited(t *testing.T) {
	f := newFixture()
	f.resolver.err = exceptions.ErrHospitalNotConfigured("hosp-missing")

	_, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-missing",
		Operation:  constvars.OperationGetPatient,
		Params:     map[string]interface{}{constvars.ParamID: "p42"},
	})
	require.Error(t, err)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusOf(err))

	require.Len(t, f.audit.records, 1)
	assert.Equal(t, constvars.AuditOutcomeError, f.audit.records[0].Outcome)
	assert.NotEmpty(t, f.audit.records[0].ErrorMessage)
}

func TestExecuteAuthFailureMarksHospitalDown(t *testing.T) {
	f := newFixture()
	f.acquirer.err = exceptions.ErrUpstreamAuth(`{"error":"invalid_client"}`)

	_, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetLabs,
		Params:     map[string]interface{}{constvars.ParamPatientID: "p42"},
	})
	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusOf(err))

	require.Len(t, f.repo.healthCalls, 1)
	assert.Equal(t, constvars.HealthStatusDown, f.repo.healthStatus)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, constvars.AuditOutcomeError, f.audit.records[0].Outcome)
}

func TestExecuteClinicalFailureLeavesHealthAlone(t *testing.T) {
	f := newFixture()
	f.dispatcher.err = exceptions.WrapWithoutError(constvars.StatusBadGateway, constvars.ErrClientEMRRequestFailed, "EMR returned 502 for Patient")

	_, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetPatient,
		Params:     map[string]interface{}{constvars.ParamID: "p42"},
	})
	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusOf(err))
	assert.Empty(t, f.repo.healthCalls, "only token-endpoint failures mark the hospital down")
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, constvars.AuditOutcomeError, f.audit.records[0].Outcome)
}

func TestExecuteAuditSurvivesExpiredRequestContext(t *testing.T) {
	f := newFixture()
	f.dispatcher.body = []byte(`{"resourceType":"Patient","id":"p42"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.usecase.Execute(ctx, "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetPatient,
		Params:     map[string]interface{}{constvars.ParamID: "p42"},
	})

	require.Len(t, f.audit.records, 1)
	assert.NoError(t, f.audit.ctxErrs[0], "the audit write must not inherit the dead request context")
}

func TestExecuteOtherErrorsDoNotTouchHealth(t *testing.T) {
	f := newFixture()
	f.dispatcher.err = errors.New("connection reset")

	_, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetPatient,
		Params:     map[string]interface{}{constvars.ParamID: "p42"},
	})
	require.Error(t, err)
	assert.Empty(t, f.repo.healthCalls)
}

func TestExecuteHealthCheckHealthy(t *testing.T) {
	f := newFixture()

	result, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationHealthCheck,
	})
	require.NoError(t, err)

	health := result.(*responses.HospitalHealth)
	assert.Equal(t, constvars.HealthStatusHealthy, health.Status)
	assert.NotEmpty(t, health.CheckedAt)
	assert.Equal(t, constvars.HealthStatusHealthy, f.repo.healthStatus)
	assert.Equal(t, 1, f.acquirer.calls, "the probe is the token request itself")
	assert.Zero(t, f.dispatcher.calls)
}

func TestExecuteHealthCheckDown(t *testing.T) {
	f := newFixture()
	f.acquirer.err = exceptions.ErrUpstreamAuth(`{"error":"invalid_client"}`)

	result, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationHealthCheck,
	})
	require.NoError(t, err, "an unreachable EMR is a probe result, not a probe failure")

	health := result.(*responses.HospitalHealth)
	assert.Equal(t, constvars.HealthStatusDown, health.Status)
	assert.Equal(t, constvars.HealthStatusDown, f.repo.healthStatus)
}

func TestExecuteGetDocumentsOffloadsAttachments(t *testing.T) {
	f := newFixture()
	f.dispatcher.body = []byte(`{
		"resourceType": "Bundle",
		"entry": [
			{"resource": {"resourceType": "DocumentReference", "id": "doc-1", "status": "current",
				"content": [{"attachment": {"contentType": "application/pdf", "data": "aGVsbG8="}}]}},
			{"resource": {"resourceType": "DocumentReference", "id": "doc-2", "status": "current",
				"content": [{"attachment": {"contentType": "application/pdf", "url": "Binary/b2"}}]}}
		]
	}`)

	result, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetDocuments,
		Params:     map[string]interface{}{constvars.ParamPatientID: "p42"},
	})
	require.NoError(t, err)

	documents := result.([]interface{})
	require.Len(t, documents, 2)
	assert.Equal(t, 1, f.storage.uploads, "only inline attachments are offloaded")
	assert.Equal(t, "https://minio.example.org/presigned", documents[0].(responses.Document).URL)
	assert.Equal(t, "Binary/b2", documents[1].(responses.Document).URL)
}

func TestExecuteGetDocumentsOffloadFailureDegrades(t *testing.T) {
	f := newFixture()
	f.storage.err = errors.New("bucket unreachable")
	f.dispatcher.body = []byte(`{
		"resourceType": "Bundle",
		"entry": [{"resource": {"resourceType": "DocumentReference", "id": "doc-1", "status": "current",
			"content": [{"attachment": {"contentType": "application/pdf", "data": "aGVsbG8="}}]}}]
	}`)

	result, err := f.usecase.Execute(context.Background(), "user-7", &requests.ExecuteEMR{
		HospitalID: "hosp-1",
		Operation:  constvars.OperationGetDocuments,
		Params:     map[string]interface{}{constvars.ParamPatientID: "p42"},
	})
	require.NoError(t, err, "storage trouble must not fail the clinical read")

	documents := result.([]interface{})
	require.Len(t, documents, 1)
	assert.Empty(t, documents[0].(responses.Document).URL)
}

func TestHospitalHealthReadsStoredState(t *testing.T) {
	f := newFixture()
	checkedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.repo.credential = &models.HospitalCredential{
		HospitalID:        "hosp-1",
		HealthStatus:      constvars.HealthStatusHealthy,
		LastHealthCheckAt: checkedAt,
		Active:            true,
	}

	health, err := f.usecase.HospitalHealth(context.Background(), "hosp-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.HealthStatusHealthy, health.Status)
	assert.Equal(t, "2026-08-01T12:00:00Z", health.CheckedAt)
}

func TestHospitalHealthUnknownHospital(t *testing.T) {
	f := newFixture()

	_, err := f.usecase.HospitalHealth(context.Background(), "hosp-missing")
	require.Error(t, err)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusOf(err))
}
