package constvars

const (
	ResourcePatient            = "Patient"
	ResourceObservation        = "Observation"
	ResourceMedicationRequest  = "MedicationRequest"
	ResourceAllergyIntolerance = "AllergyIntolerance"
	ResourceCondition          = "Condition"
	ResourceEncounter          = "Encounter"
	ResourceImmunization       = "Immunization"
	ResourceDocumentReference  = "DocumentReference"
	ResourceProcedure          = "Procedure"
	ResourceServiceRequest     = "ServiceRequest"
	ResourceBundle             = "Bundle"
	ResourceOperationOutcome   = "OperationOutcome"
)

const (
	FhirObservationCategoryLaboratory = "laboratory"
	FhirObservationCategoryVitalSigns = "vital-signs"
)

const (
	FhirIdentifierTypeMRN = "MR"
)

const (
	FhirServiceRequestStatusActive  = "active"
	FhirServiceRequestStatusRevoked = "revoked"
	FhirServiceRequestIntentOrder   = "order"
	FhirRequestPriorityRoutine      = "routine"
)

// Page-size caps for search operations so a single call can never pull an
// unbounded result set from the upstream server.
const (
	FhirSearchPatientPageSize  = 50
	FhirSearchDefaultPageSize  = 100
	FhirSearchCountParam       = "_count"
	FhirSearchPatientRefParam  = "patient"
	FhirSearchCategoryParam    = "category"
	FhirSearchDateParam        = "date"
	FhirSearchStatusParam      = "status"
	FhirSearchCodeParam        = "code"
	FhirSearchClinicalStatus   = "clinical-status"
	FhirSearchNameParam        = "name"
	FhirSearchFamilyParam      = "family"
	FhirSearchGivenParam       = "given"
	FhirSearchIdentifierParam  = "identifier"
	FhirSearchBirthdateParam   = "birthdate"
	FhirPatientReferencePrefix = "Patient/"
)
