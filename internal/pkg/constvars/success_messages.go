package constvars

const (
	ExecuteOperationSuccessMessage = "operation executed successfully"
	HealthCheckSuccessMessage      = "health check completed"
)
