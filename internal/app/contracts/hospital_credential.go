package contracts

import (
	"context"
	"time"

	"emr-gateway-service/internal/app/models"
)

type HospitalCredentialRepository interface {
	FindActiveByHospitalID(ctx context.Context, hospitalID string) (*models.HospitalCredential, error)
	UpdateHealthStatus(ctx context.Context, hospitalID, status string, checkedAt time.Time) error
}

// CredentialResolver loads and decrypts the connection for a hospital.
type CredentialResolver interface {
	Resolve(ctx context.Context, hospitalID string) (*models.ResolvedCredential, error)
}
