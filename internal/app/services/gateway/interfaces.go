package gateway

import (
	"context"

	"emr-gateway-service/internal/pkg/dto/requests"
	"emr-gateway-service/internal/pkg/dto/responses"
)

type GatewayUsecase interface {
	Execute(ctx context.Context, userID string, request *requests.ExecuteEMR) (interface{}, error)
	HospitalHealth(ctx context.Context, hospitalID string) (*responses.HospitalHealth, error)
}
