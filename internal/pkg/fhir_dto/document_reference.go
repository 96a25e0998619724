package fhir_dto

type DocumentReference struct {
	ResourceType string                     `json:"resourceType,omitempty"`
	ID           string                     `json:"id,omitempty"`
	Status       string                     `json:"status,omitempty"`
	Type         *CodeableConcept           `json:"type,omitempty"`
	Category     []CodeableConcept          `json:"category,omitempty"`
	Subject      Reference                  `json:"subject,omitempty"`
	Date         string                     `json:"date,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Content      []DocumentReferenceContent `json:"content,omitempty"`
}

type DocumentReferenceContent struct {
	Attachment Attachment `json:"attachment,omitempty"`
}
