package routers

import (
	"emr-gateway-service/internal/app/delivery/http/middlewares"
	"emr-gateway-service/internal/app/services/gateway"

	"github.com/go-chi/chi/v5"
)

func attachEMRRoutes(router chi.Router, middlewares *middlewares.Middlewares, gatewayController *gateway.GatewayController) {
	router.With(middlewares.Authenticate).Post("/execute", gatewayController.ExecuteOperation)
	router.With(middlewares.Authenticate).Get("/hospitals/{hospitalID}/health", gatewayController.GetHospitalHealth)
}
