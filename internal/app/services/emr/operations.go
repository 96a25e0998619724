package emr

import (
	"net/url"
	"strconv"
	"time"

	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"
	"emr-gateway-service/internal/pkg/fhir_dto"
	"emr-gateway-service/internal/pkg/mapper"
	"emr-gateway-service/internal/pkg/utils"
)

// OperationSpec describes how one clinical operation turns into a single
// FHIR request. The table below is the entire supported surface: an
// operation not listed here is rejected before any network traffic.
type OperationSpec struct {
	Method     string
	Resource   string
	ByID       bool
	MapKind    mapper.Kind
	Collection bool
	Query      func(params map[string]interface{}) (url.Values, error)
	Body       func(params map[string]interface{}) (interface{}, string, error)
}

var operationTable = map[string]OperationSpec{
	constvars.OperationSearchPatients: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourcePatient,
		MapKind:    mapper.KindPatient,
		Collection: true,
		Query:      patientSearchQuery,
	},
	constvars.OperationGetPatient: {
		Method:   constvars.MethodGet,
		Resource: constvars.ResourcePatient,
		ByID:     true,
		MapKind:  mapper.KindPatient,
	},
	constvars.OperationUpdatePatient: {
		Method:   constvars.MethodPatch,
		Resource: constvars.ResourcePatient,
		ByID:     true,
		MapKind:  mapper.KindPatient,
		Body:     jsonPatchBody,
	},
	constvars.OperationGetLabs: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceObservation,
		MapKind:    mapper.KindLabResult,
		Collection: true,
		Query:      observationQuery(constvars.FhirObservationCategoryLaboratory),
	},
	constvars.OperationGetMedications: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceMedicationRequest,
		MapKind:    mapper.KindMedication,
		Collection: true,
		Query:      patientScopedQuery(constvars.FhirSearchStatusParam),
	},
	constvars.OperationGetAllergies: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceAllergyIntolerance,
		MapKind:    mapper.KindAllergy,
		Collection: true,
		Query:      patientScopedQuery(constvars.FhirSearchClinicalStatus),
	},
	constvars.OperationGetConditions: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceCondition,
		MapKind:    mapper.KindCondition,
		Collection: true,
		Query:      patientScopedQuery(constvars.FhirSearchClinicalStatus),
	},
	constvars.OperationGetVitals: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceObservation,
		MapKind:    mapper.KindVitalSign,
		Collection: true,
		Query:      observationQuery(constvars.FhirObservationCategoryVitalSigns),
	},
	constvars.OperationGetEncounters: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceEncounter,
		MapKind:    mapper.KindEncounter,
		Collection: true,
		Query:      patientScopedQuery(constvars.FhirSearchStatusParam, constvars.FhirSearchDateParam),
	},
	constvars.OperationGetImmunizations: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceImmunization,
		MapKind:    mapper.KindImmunization,
		Collection: true,
		Query:      patientScopedQuery(),
	},
	constvars.OperationGetDocuments: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceDocumentReference,
		MapKind:    mapper.KindDocument,
		Collection: true,
		Query:      patientScopedQuery(constvars.FhirSearchCategoryParam),
	},
	constvars.OperationGetProcedures: {
		Method:     constvars.MethodGet,
		Resource:   constvars.ResourceProcedure,
		MapKind:    mapper.KindProcedure,
		Collection: true,
		Query:      patientScopedQuery(constvars.FhirSearchDateParam),
	},
	constvars.OperationCreateOrder: {
		Method:   constvars.MethodPost,
		Resource: constvars.ResourceServiceRequest,
		MapKind:  mapper.KindRaw,
		Body:     serviceRequestBody,
	},
	constvars.OperationCancelOrder: {
		Method:   constvars.MethodPatch,
		Resource: constvars.ResourceServiceRequest,
		ByID:     true,
		MapKind:  mapper.KindRaw,
		Body:     cancelOrderBody,
	},
}

// SpecFor returns the request recipe for an operation name.
func SpecFor(operation string) (OperationSpec, bool) {
	spec, ok := operationTable[operation]
	return spec, ok
}

// IsSupported reports whether the gateway accepts the operation at all,
// including the health probe which never reaches the dispatcher.
func IsSupported(operation string) bool {
	if operation == constvars.OperationHealthCheck {
		return true
	}
	_, ok := operationTable[operation]
	return ok
}

func patientSearchQuery(params map[string]interface{}) (url.Values, error) {
	query := url.Values{}
	for _, key := range []string{
		constvars.FhirSearchNameParam,
		constvars.FhirSearchFamilyParam,
		constvars.FhirSearchGivenParam,
		constvars.FhirSearchIdentifierParam,
		constvars.FhirSearchBirthdateParam,
	} {
		if value := utils.ParamString(params, key); value != "" {
			query.Set(key, value)
		}
	}
	if len(query) == 0 {
		return nil, exceptions.ErrInputValidation(nil)
	}
	query.Set(constvars.FhirSearchCountParam, strconv.Itoa(constvars.FhirSearchPatientPageSize))
	return query, nil
}

// patientScopedQuery requires a patient reference and forwards the listed
// optional filters verbatim.
func patientScopedQuery(optionalKeys ...string) func(params map[string]interface{}) (url.Values, error) {
	return func(params map[string]interface{}) (url.Values, error) {
		patientID := utils.ParamString(params, constvars.ParamPatientID)
		if patientID == "" {
			return nil, exceptions.ErrMissingParam(constvars.ParamPatientID)
		}

		query := url.Values{}
		query.Set(constvars.FhirSearchPatientRefParam, patientID)
		for _, key := range optionalKeys {
			if value := utils.ParamString(params, key); value != "" {
				query.Set(key, value)
			}
		}
		query.Set(constvars.FhirSearchCountParam, strconv.Itoa(constvars.FhirSearchDefaultPageSize))
		return query, nil
	}
}

func observationQuery(category string) func(params map[string]interface{}) (url.Values, error) {
	scoped := patientScopedQuery(constvars.FhirSearchDateParam, constvars.FhirSearchCodeParam)
	return func(params map[string]interface{}) (url.Values, error) {
		query, err := scoped(params)
		if err != nil {
			return nil, err
		}
		query.Set(constvars.FhirSearchCategoryParam, category)
		return query, nil
	}
}

func jsonPatchBody(params map[string]interface{}) (interface{}, string, error) {
	patches, ok := params["patches"].([]interface{})
	if !ok || len(patches) == 0 {
		return nil, "", exceptions.ErrMissingParam("patches")
	}
	return patches, constvars.MIMEApplicationJSONPatch, nil
}

func serviceRequestBody(params map[string]interface{}) (interface{}, string, error) {
	patientID := utils.ParamString(params, constvars.ParamPatientID)
	codeText := utils.ParamString(params, "code")
	if patientID == "" {
		return nil, "", exceptions.ErrMissingParam(constvars.ParamPatientID)
	}
	if codeText == "" {
		return nil, "", exceptions.ErrMissingParam("code")
	}

	order := fhir_dto.ServiceRequest{
		ResourceType: constvars.ResourceServiceRequest,
		Status:       constvars.FhirServiceRequestStatusActive,
		Intent:       constvars.FhirServiceRequestIntentOrder,
		Priority:     utils.ParamStringDefault(params, "priority", constvars.FhirRequestPriorityRoutine),
		Code: &fhir_dto.CodeableConcept{
			Text: codeText,
		},
		Subject: fhir_dto.Reference{
			Reference: constvars.FhirPatientReferencePrefix + patientID,
		},
		AuthoredOn: time.Now().UTC().Format(time.RFC3339),
	}
	if system := utils.ParamString(params, "codeSystem"); system != "" {
		order.Code.Coding = []fhir_dto.Coding{{
			System: system,
			Code:   utils.ParamStringDefault(params, "codeValue", codeText),
		}}
	}
	if requesterID := utils.ParamString(params, "requesterId"); requesterID != "" {
		order.Requester = &fhir_dto.Reference{Reference: "Practitioner/" + requesterID}
	}
	if reason := utils.ParamString(params, "reason"); reason != "" {
		order.ReasonCode = []fhir_dto.CodeableConcept{{Text: reason}}
	}
	if note := utils.ParamString(params, "note"); note != "" {
		order.Note = []fhir_dto.Annotation{{Text: note}}
	}
	return order, constvars.MIMEApplicationFHIRJSON, nil
}

func cancelOrderBody(params map[string]interface{}) (interface{}, string, error) {
	patch := []map[string]interface{}{
		{"op": "replace", "path": "/status", "value": constvars.FhirServiceRequestStatusRevoked},
	}
	return patch, constvars.MIMEApplicationJSONPatch, nil
}
