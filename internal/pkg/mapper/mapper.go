// Package mapper flattens upstream FHIR resource shapes into the stable
// DTOs the dashboard consumes. Every transform is pure and total: missing
// optional fields degrade to zero values, never to an error.
package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/dto/responses"
	"emr-gateway-service/internal/pkg/fhir_dto"

	"github.com/tidwall/gjson"
)

// Kind selects the transform to apply. It is keyed separately from the FHIR
// resourceType because Observation fans out to two DTOs (labs and vitals)
// depending on the operation that fetched it.
type Kind string

const (
	KindPatient      Kind = "patient"
	KindLabResult    Kind = "lab_result"
	KindMedication   Kind = "medication"
	KindAllergy      Kind = "allergy"
	KindCondition    Kind = "condition"
	KindVitalSign    Kind = "vital_sign"
	KindEncounter    Kind = "encounter"
	KindImmunization Kind = "immunization"
	KindDocument     Kind = "document"
	KindProcedure    Kind = "procedure"
	KindRaw          Kind = "raw"
)

type transformFunc func(raw json.RawMessage) (interface{}, error)

var registry = map[Kind]transformFunc{
	KindPatient:      mapPatient,
	KindLabResult:    mapLabResult,
	KindMedication:   mapMedication,
	KindAllergy:      mapAllergy,
	KindCondition:    mapCondition,
	KindVitalSign:    mapVitalSign,
	KindEncounter:    mapEncounter,
	KindImmunization: mapImmunization,
	KindDocument:     mapDocument,
	KindProcedure:    mapProcedure,
	KindRaw:          mapRaw,
}

// MapResponse maps an upstream response body that is either a single
// resource or a searchset Bundle. Collection operations always yield a
// slice; single-resource operations yield one DTO (the first entry when the
// upstream unexpectedly answered with a bundle).
//
// Bundle entries are mapped independently: a malformed entry contributes an
// entry error but never aborts the rest of the collection.
func MapResponse(kind Kind, body []byte, collection bool) (interface{}, []error, error) {
	transform, ok := registry[kind]
	if !ok {
		return nil, nil, fmt.Errorf("no transform registered for kind %q", kind)
	}

	if gjson.GetBytes(body, "resourceType").String() == constvars.ResourceBundle {
		items, entryErrs := mapBundle(transform, body)
		if !collection {
			if len(items) == 0 {
				return nil, entryErrs, nil
			}
			return items[0], entryErrs, nil
		}
		return items, entryErrs, nil
	}

	dto, err := transform(body)
	if err != nil {
		return nil, nil, err
	}
	if collection {
		return []interface{}{dto}, nil, nil
	}
	return dto, nil, nil
}

func mapBundle(transform transformFunc, body []byte) ([]interface{}, []error) {
	var bundle fhir_dto.FHIRBundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return []interface{}{}, []error{err}
	}

	items := make([]interface{}, 0, len(bundle.Entry))
	var entryErrs []error
	for i, entry := range bundle.Entry {
		dto, err := transform(entry.Resource)
		if err != nil {
			entryErrs = append(entryErrs, fmt.Errorf("bundle entry %d: %w", i, err))
			continue
		}
		items = append(items, dto)
	}
	return items, entryErrs
}

func mapPatient(raw json.RawMessage) (interface{}, error) {
	var patient fhir_dto.Patient
	if err := json.Unmarshal(raw, &patient); err != nil {
		return nil, err
	}

	dto := responses.Patient{
		ID:        patient.ID,
		Gender:    patient.Gender,
		DOB:       patient.BirthDate,
		MRN:       identifierByTypeCode(patient.Identifier, constvars.FhirIdentifierTypeMRN),
		Active:    true,
		Phone:     telecomValue(patient.Telecom, "phone"),
		Email:     telecomValue(patient.Telecom, "email"),
	}
	if patient.Active != nil {
		dto.Active = *patient.Active
	}
	if len(patient.Name) > 0 {
		name := patient.Name[0]
		dto.LastName = name.Family
		if len(name.Given) > 0 {
			dto.FirstName = name.Given[0]
		}
	}
	if len(patient.Address) > 0 {
		dto.City = patient.Address[0].City
	}
	return dto, nil
}

func mapLabResult(raw json.RawMessage) (interface{}, error) {
	var observation fhir_dto.Observation
	if err := json.Unmarshal(raw, &observation); err != nil {
		return nil, err
	}

	dto := responses.LabResult{
		ID:            observation.ID,
		TestName:      conceptText(&observation.Code),
		Status:        observation.Status,
		EffectiveDate: firstNonEmpty(observation.EffectiveDateTime, observation.Issued),
	}
	dto.Value, dto.Unit = observationValue(observation.ValueQuantity, observation.ValueString)
	if len(observation.Interpretation) > 0 {
		dto.Interpretation = conceptText(&observation.Interpretation[0])
	}
	if len(observation.ReferenceRange) > 0 {
		dto.ReferenceRange = referenceRangeText(observation.ReferenceRange[0])
	}
	return dto, nil
}

func mapVitalSign(raw json.RawMessage) (interface{}, error) {
	var observation fhir_dto.Observation
	if err := json.Unmarshal(raw, &observation); err != nil {
		return nil, err
	}

	dto := responses.VitalSign{
		ID:            observation.ID,
		Type:          conceptText(&observation.Code),
		EffectiveDate: firstNonEmpty(observation.EffectiveDateTime, observation.Issued),
	}
	dto.Value, dto.Unit = observationValue(observation.ValueQuantity, observation.ValueString)
	for _, component := range observation.Component {
		mapped := responses.VitalComponent{Type: conceptText(&component.Code)}
		mapped.Value, mapped.Unit = observationValue(component.ValueQuantity, component.ValueString)
		dto.Components = append(dto.Components, mapped)
	}
	return dto, nil
}

func mapMedication(raw json.RawMessage) (interface{}, error) {
	var medication fhir_dto.MedicationRequest
	if err := json.Unmarshal(raw, &medication); err != nil {
		return nil, err
	}

	dto := responses.Medication{
		ID:             medication.ID,
		Name:           conceptText(medication.MedicationCodeableConcept),
		Status:         medication.Status,
		PrescribedDate: medication.AuthoredOn,
	}
	if dto.Name == "" && medication.MedicationReference != nil {
		dto.Name = medication.MedicationReference.Display
	}
	if medication.Requester != nil {
		dto.Prescriber = medication.Requester.Display
	}
	if len(medication.DosageInstruction) > 0 {
		dto.Dosage = medication.DosageInstruction[0].Text
		dto.Route = conceptText(medication.DosageInstruction[0].Route)
	}
	return dto, nil
}

func mapAllergy(raw json.RawMessage) (interface{}, error) {
	var allergy fhir_dto.AllergyIntolerance
	if err := json.Unmarshal(raw, &allergy); err != nil {
		return nil, err
	}

	dto := responses.Allergy{
		ID:           allergy.ID,
		Substance:    conceptText(allergy.Code),
		Criticality:  allergy.Criticality,
		Status:       conceptText(allergy.ClinicalStatus),
		RecordedDate: allergy.RecordedDate,
	}
	if len(allergy.Reaction) > 0 {
		reaction := allergy.Reaction[0]
		dto.Severity = reaction.Severity
		if len(reaction.Manifestation) > 0 {
			dto.Reaction = conceptText(&reaction.Manifestation[0])
		}
	}
	return dto, nil
}

func mapCondition(raw json.RawMessage) (interface{}, error) {
	var condition fhir_dto.Condition
	if err := json.Unmarshal(raw, &condition); err != nil {
		return nil, err
	}

	dto := responses.Condition{
		ID:                 condition.ID,
		Name:               conceptText(condition.Code),
		ClinicalStatus:     conceptText(condition.ClinicalStatus),
		VerificationStatus: conceptText(condition.VerificationStatus),
		OnsetDate:          condition.OnsetDateTime,
		RecordedDate:       condition.RecordedDate,
	}
	if len(condition.Category) > 0 {
		dto.Category = conceptText(&condition.Category[0])
	}
	return dto, nil
}

func mapEncounter(raw json.RawMessage) (interface{}, error) {
	var encounter fhir_dto.Encounter
	if err := json.Unmarshal(raw, &encounter); err != nil {
		return nil, err
	}

	dto := responses.Encounter{
		ID:     encounter.ID,
		Status: encounter.Status,
		Class:  firstNonEmpty(encounter.Class.Display, encounter.Class.Code),
	}
	if len(encounter.Type) > 0 {
		dto.Type = conceptText(&encounter.Type[0])
	}
	if encounter.Period != nil {
		dto.StartDate = encounter.Period.Start
		dto.EndDate = encounter.Period.End
	}
	if len(encounter.Location) > 0 {
		dto.Location = encounter.Location[0].Location.Display
	}
	if len(encounter.Participant) > 0 {
		dto.Provider = encounter.Participant[0].Individual.Display
	}
	return dto, nil
}

func mapImmunization(raw json.RawMessage) (interface{}, error) {
	var immunization fhir_dto.Immunization
	if err := json.Unmarshal(raw, &immunization); err != nil {
		return nil, err
	}

	dto := responses.Immunization{
		ID:        immunization.ID,
		Vaccine:   conceptText(&immunization.VaccineCode),
		Status:    immunization.Status,
		Date:      immunization.OccurrenceDateTime,
		LotNumber: immunization.LotNumber,
	}
	if len(immunization.ProtocolApplied) > 0 {
		dto.DoseNumber = immunization.ProtocolApplied[0].DoseNumberPositiveInt
	}
	return dto, nil
}

func mapDocument(raw json.RawMessage) (interface{}, error) {
	var document fhir_dto.DocumentReference
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, err
	}

	dto := responses.Document{
		ID:     document.ID,
		Title:  document.Description,
		Type:   conceptText(document.Type),
		Status: document.Status,
		Date:   document.Date,
	}
	if len(document.Category) > 0 {
		dto.Category = conceptText(&document.Category[0])
	}
	if len(document.Content) > 0 {
		attachment := document.Content[0].Attachment
		dto.URL = attachment.Url
		dto.ContentType = attachment.ContentType
		dto.AttachmentData = attachment.Data
		if dto.Title == "" {
			dto.Title = attachment.Title
		}
	}
	return dto, nil
}

func mapProcedure(raw json.RawMessage) (interface{}, error) {
	var procedure fhir_dto.Procedure
	if err := json.Unmarshal(raw, &procedure); err != nil {
		return nil, err
	}

	dto := responses.Procedure{
		ID:            procedure.ID,
		Name:          conceptText(procedure.Code),
		Status:        procedure.Status,
		PerformedDate: procedure.PerformedDateTime,
	}
	if dto.PerformedDate == "" && procedure.PerformedPeriod != nil {
		dto.PerformedDate = procedure.PerformedPeriod.Start
	}
	if len(procedure.Performer) > 0 {
		dto.Performer = procedure.Performer[0].Actor.Display
	}
	if len(procedure.BodySite) > 0 {
		dto.BodySite = conceptText(&procedure.BodySite[0])
	}
	return dto, nil
}

func mapRaw(raw json.RawMessage) (interface{}, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// conceptText prefers the structured text, then the first coding's display,
// then the bare code.
func conceptText(concept *fhir_dto.CodeableConcept) string {
	if concept == nil {
		return ""
	}
	if concept.Text != "" {
		return concept.Text
	}
	if len(concept.Coding) > 0 {
		if concept.Coding[0].Display != "" {
			return concept.Coding[0].Display
		}
		return concept.Coding[0].Code
	}
	return ""
}

func identifierByTypeCode(identifiers []fhir_dto.Identifier, typeCode string) string {
	for _, identifier := range identifiers {
		for _, coding := range identifier.Type.Coding {
			if coding.Code == typeCode {
				return identifier.Value
			}
		}
	}
	return ""
}

func telecomValue(telecom []fhir_dto.ContactPoint, system string) string {
	for _, contact := range telecom {
		if contact.System == system {
			return contact.Value
		}
	}
	return ""
}

func observationValue(quantity *fhir_dto.Quantity, valueString string) (value, unit string) {
	if quantity != nil {
		return formatQuantity(quantity.Value), quantity.Unit
	}
	return valueString, ""
}

func referenceRangeText(rr fhir_dto.ReferenceRange) string {
	if rr.Text != "" {
		return rr.Text
	}
	if rr.Low != nil && rr.High != nil {
		return fmt.Sprintf("%s-%s", formatQuantity(rr.Low.Value), formatQuantity(rr.High.Value))
	}
	return ""
}

func formatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
