package fhir_dto

// ServiceRequest is the clinical order resource the gateway creates on
// behalf of the dashboard. Optional fields are pointers so they are omitted
// from the request body entirely instead of being sent as null.
type ServiceRequest struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Status       string            `json:"status"`
	Intent       string            `json:"intent"`
	Priority     string            `json:"priority,omitempty"`
	Code         *CodeableConcept  `json:"code,omitempty"`
	Subject      Reference         `json:"subject"`
	Requester    *Reference        `json:"requester,omitempty"`
	ReasonCode   []CodeableConcept `json:"reasonCode,omitempty"`
	Note         []Annotation      `json:"note,omitempty"`
	AuthoredOn   string            `json:"authoredOn,omitempty"`
}
