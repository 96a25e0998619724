package fhir_dto

type Procedure struct {
	ResourceType      string               `json:"resourceType,omitempty"`
	ID                string               `json:"id,omitempty"`
	Status            string               `json:"status,omitempty"`
	Code              *CodeableConcept     `json:"code,omitempty"`
	Subject           Reference            `json:"subject,omitempty"`
	PerformedDateTime string               `json:"performedDateTime,omitempty"`
	PerformedPeriod   *Period              `json:"performedPeriod,omitempty"`
	Performer         []ProcedurePerformer `json:"performer,omitempty"`
	BodySite          []CodeableConcept    `json:"bodySite,omitempty"`
}

type ProcedurePerformer struct {
	Actor Reference `json:"actor,omitempty"`
}
