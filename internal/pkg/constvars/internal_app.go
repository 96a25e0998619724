package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY   ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY ContextKey = "session_data"
)

const (
	REQUEST_ID_PREFIX = "EMRGW_SVC_"
)

const (
	MongoCollectionHospitalCredentials = "hospital_credentials"
)

const (
	RabbitMQAuditQueue = "emr_audit_records"
)
