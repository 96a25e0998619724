package fhir_dto

type Immunization struct {
	ResourceType       string                 `json:"resourceType,omitempty"`
	ID                 string                 `json:"id,omitempty"`
	Status             string                 `json:"status,omitempty"`
	VaccineCode        CodeableConcept        `json:"vaccineCode,omitempty"`
	Patient            Reference              `json:"patient,omitempty"`
	OccurrenceDateTime string                 `json:"occurrenceDateTime,omitempty"`
	LotNumber          string                 `json:"lotNumber,omitempty"`
	ProtocolApplied    []ImmunizationProtocol `json:"protocolApplied,omitempty"`
}

type ImmunizationProtocol struct {
	DoseNumberPositiveInt int `json:"doseNumberPositiveInt,omitempty"`
}
