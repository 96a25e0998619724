package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingUserIDKey     = "user_id"
	LoggingHospitalIDKey = "hospital_id"
	LoggingOperationKey  = "operation"
	LoggingPatientIDKey  = "patient_id"
	LoggingOutcomeKey    = "outcome"
	LoggingVendorKey     = "vendor"
	LoggingStatusCodeKey = "status_code"
	LoggingResourceKey   = "resource"
)
