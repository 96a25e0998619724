package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientHospitalNotConfigured         = "this hospital has no active EMR connection configured"
	ErrClientEMRAuthenticationFailed       = "could not authenticate with the hospital's EMR system"
	ErrClientUnknownOperation              = "the requested clinical operation is not supported"
	ErrClientEMRRequestFailed              = "the hospital's EMR system rejected the request"
	ErrClientServerLongRespond             = "the app taking too long to respond"
)

// Error messages for developers
const (
	ErrDevAuthTokenMissing          = "authorization header missing or empty"
	ErrDevAuthTokenInvalid          = "bearer token invalid"
	ErrDevAuthTokenInvalidOrExpired = "bearer token invalid or expired"
	ErrDevAuthSigningMethod         = "unexpected jwt signing method"
	ErrDevAuthInvalidSession        = "session not found or expired"
	ErrDevValidationFailed          = "request validation failed"
	ErrDevMissingParam              = "required param %q missing"
	ErrDevCannotParseJSON           = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON         = "failed to marshal value to JSON"
	ErrDevCreateHTTPRequest         = "failed to create HTTP request"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevServerDeadlineExceeded    = "request deadline exceeded"

	ErrDevHospitalNotConfigured = "no active credential found for hospital %s"
	ErrDevDecryptSecret         = "failed to decrypt stored %s"
	ErrDevUnknownSecretFormat   = "credential for hospital %s carries unknown secret format %q"
	ErrDevSignAssertion         = "failed to sign client assertion JWT"
	ErrDevParsePrivateKey       = "failed to parse RSA private key"
	ErrDevTokenEndpoint         = "failed to derive token endpoint from base URL"
	ErrDevUpstreamAuth          = "token endpoint returned non-2xx: %s"
	ErrDevUnknownOperation      = "operation %q is not in the supported set"
	ErrDevUpstreamFHIR          = "EMR returned %d for %s"
	ErrDevDecodeUpstreamBody    = "failed to decode upstream %s response"

	ErrDevDBFailedToFindDocument    = "failed to find document in database"
	ErrDevDBFailedToUpdateDocument  = "failed to update document in database"
	ErrDevRedisGetNoData            = "failed to get data from redis with key: %s"
	ErrDevRedisSet                  = "failed to set data in redis"
	ErrDevRedisDelete               = "failed to delete data from redis"
	ErrDevRabbitMQPublish           = "failed to publish message to queue %s"
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"
)
