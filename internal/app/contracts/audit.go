package contracts

import (
	"context"

	"emr-gateway-service/internal/app/models"
)

// AuditRecorder delivers audit records to the compliance queue. Recording
// is best effort: implementations log failures instead of returning them so
// an audit outage never blocks clinical traffic.
type AuditRecorder interface {
	Record(ctx context.Context, record *models.AuditRecord)
}
