package constvars

// Clinical operations the gateway accepts. Anything outside this set fails
// closed before a single byte goes over the wire.
const (
	OperationHealthCheck      = "health_check"
	OperationSearchPatients   = "search_patients"
	OperationGetPatient       = "get_patient"
	OperationUpdatePatient    = "update_patient"
	OperationGetLabs          = "get_labs"
	OperationGetMedications   = "get_medications"
	OperationGetAllergies     = "get_allergies"
	OperationGetConditions    = "get_conditions"
	OperationGetVitals        = "get_vitals"
	OperationGetEncounters    = "get_encounters"
	OperationGetImmunizations = "get_immunizations"
	OperationGetDocuments     = "get_documents"
	OperationGetProcedures    = "get_procedures"
	OperationCreateOrder      = "create_order"
	OperationCancelOrder      = "cancel_order"
)

const AuditActionPrefix = "EMR_"

const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeError   = "error"
)

const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"
	HealthStatusDown     = "down"
)

const (
	AuthMethodClientSecret = "client_secret"
	AuthMethodJWTBearer    = "jwt_bearer"
)

const (
	SecretFormatAESGCM    = "aes-gcm"
	SecretFormatPlaintext = "plaintext"
)

const (
	VendorEpic    = "epic"
	VendorGeneric = "generic"
)

// Default OAuth2 scopes requested when a credential does not pin its own.
const (
	DefaultScopesClientSecret = "patient/*.read user/*.read"
	DefaultScopesSystem       = "system/*.read"
)

const (
	OAuthGrantTypeClientCredentials = "client_credentials"
	OAuthClientAssertionTypeJWT     = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
)

const (
	ParamID        = "id"
	ParamPatientID = "patientId"
)
