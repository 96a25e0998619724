package fhir_dto

type Encounter struct {
	ResourceType string                 `json:"resourceType,omitempty"`
	ID           string                 `json:"id,omitempty"`
	Status       string                 `json:"status,omitempty"`
	Class        Coding                 `json:"class,omitempty"`
	Type         []CodeableConcept      `json:"type,omitempty"`
	Subject      Reference              `json:"subject,omitempty"`
	Participant  []EncounterParticipant `json:"participant,omitempty"`
	Period       *Period                `json:"period,omitempty"`
	Location     []EncounterLocation    `json:"location,omitempty"`
}

type EncounterParticipant struct {
	Individual Reference `json:"individual,omitempty"`
}

type EncounterLocation struct {
	Location Reference `json:"location,omitempty"`
}
