package fhir_dto

type MedicationRequest struct {
	ResourceType              string             `json:"resourceType,omitempty"`
	ID                        string             `json:"id,omitempty"`
	Status                    string             `json:"status,omitempty"`
	Intent                    string             `json:"intent,omitempty"`
	MedicationCodeableConcept *CodeableConcept   `json:"medicationCodeableConcept,omitempty"`
	MedicationReference       *Reference         `json:"medicationReference,omitempty"`
	Subject                   Reference          `json:"subject,omitempty"`
	AuthoredOn                string             `json:"authoredOn,omitempty"`
	Requester                 *Reference         `json:"requester,omitempty"`
	DosageInstruction         []DosageInstruction `json:"dosageInstruction,omitempty"`
}

type DosageInstruction struct {
	Text  string           `json:"text,omitempty"`
	Route *CodeableConcept `json:"route,omitempty"`
}
