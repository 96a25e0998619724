package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"emr-gateway-service/internal/app/config"
	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/dto/requests"
	"emr-gateway-service/internal/pkg/exceptions"
	"emr-gateway-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GatewayController struct {
	Log            *zap.Logger
	GatewayUsecase GatewayUsecase
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
}

func NewGatewayController(logger *zap.Logger, gatewayUsecase GatewayUsecase, sessionService contracts.SessionService, internalConfig *config.InternalConfig) *GatewayController {
	return &GatewayController{
		Log:            logger,
		GatewayUsecase: gatewayUsecase,
		SessionService: sessionService,
		InternalConfig: internalConfig,
	}
}

func (ctrl *GatewayController) ExecuteOperation(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ExecuteEMR)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok || sessionData == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionInvalid(nil))
		return
	}
	session, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	timeout := time.Duration(ctrl.InternalConfig.EMR.RequestTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result, err := ctrl.GatewayUsecase.Execute(ctx, session.UserID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExecuteOperationSuccessMessage, result)
}

func (ctrl *GatewayController) GetHospitalHealth(w http.ResponseWriter, r *http.Request) {
	hospitalID := chi.URLParam(r, "hospitalID")
	if hospitalID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingParam("hospitalID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GatewayUsecase.HospitalHealth(ctx, hospitalID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, result)
}
