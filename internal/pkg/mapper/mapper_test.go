package mapper

import (
	"testing"

	"emr-gateway-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamPatient = `{
	"resourceType": "Patient",
	"id": "p42",
	"identifier": [
		{"type": {"coding": [{"system": "http://terminology.hl7.org/CodeSystem/v2-0203", "code": "MR"}]}, "value": "MRN-0042"},
		{"type": {"coding": [{"code": "SS"}]}, "value": "999-99-9999"}
	],
	"name": [{"family": "Doe", "given": ["Jane", "Q"]}],
	"telecom": [
		{"system": "phone", "value": "555-0100"},
		{"system": "email", "value": "jane@example.com"}
	],
	"gender": "female",
	"birthDate": "1980-01-01",
	"address": [{"city": "Springfield", "state": "IL"}]
}`

func TestMapPatient(t *testing.T) {
	result, entryErrs, err := MapResponse(KindPatient, []byte(upstreamPatient), false)
	require.NoError(t, err)
	require.Empty(t, entryErrs)

	patient, ok := result.(responses.Patient)
	require.True(t, ok)
	assert.Equal(t, "p42", patient.ID)
	assert.Equal(t, "Jane", patient.FirstName)
	assert.Equal(t, "Doe", patient.LastName)
	assert.Equal(t, "1980-01-01", patient.DOB)
	assert.Equal(t, "female", patient.Gender)
	assert.Equal(t, "MRN-0042", patient.MRN)
	assert.Equal(t, "555-0100", patient.Phone)
	assert.Equal(t, "jane@example.com", patient.Email)
	assert.Equal(t, "Springfield", patient.City)
	assert.True(t, patient.Active, "patient without an active flag defaults to active")
}

func TestMapPatientExplicitInactive(t *testing.T) {
	result, _, err := MapResponse(KindPatient, []byte(`{"resourceType":"Patient","id":"p1","active":false}`), false)
	require.NoError(t, err)
	assert.False(t, result.(responses.Patient).Active)
}

func TestMapLabResultBundle(t *testing.T) {
	bundle := `{
		"resourceType": "Bundle",
		"type": "searchset",
		"entry": [
			{"resource": {
				"resourceType": "Observation",
				"id": "obs-1",
				"status": "final",
				"code": {"text": "Hemoglobin"},
				"effectiveDateTime": "2024-05-01T08:00:00Z",
				"valueQuantity": {"value": 13.5, "unit": "g/dL"},
				"interpretation": [{"coding": [{"code": "N", "display": "Normal"}]}],
				"referenceRange": [{"low": {"value": 12}, "high": {"value": 16}}]
			}},
			{"resource": {
				"resourceType": "Observation",
				"id": "obs-2",
				"status": "final",
				"code": {"coding": [{"code": "2345-7", "display": "Glucose"}]},
				"valueString": "pending"
			}}
		]
	}`

	result, entryErrs, err := MapResponse(KindLabResult, []byte(bundle), true)
	require.NoError(t, err)
	require.Empty(t, entryErrs)

	labs, ok := result.([]interface{})
	require.True(t, ok)
	require.Len(t, labs, 2)

	first := labs[0].(responses.LabResult)
	assert.Equal(t, "Hemoglobin", first.TestName)
	assert.Equal(t, "13.5", first.Value)
	assert.Equal(t, "g/dL", first.Unit)
	assert.Equal(t, "12-16", first.ReferenceRange)
	assert.Equal(t, "Normal", first.Interpretation)
	assert.Equal(t, "2024-05-01T08:00:00Z", first.EffectiveDate)

	second := labs[1].(responses.LabResult)
	assert.Equal(t, "Glucose", second.TestName)
	assert.Equal(t, "pending", second.Value)
	assert.Empty(t, second.Unit)
}

func TestMapVitalSignComponents(t *testing.T) {
	observation := `{
		"resourceType": "Observation",
		"id": "bp-1",
		"code": {"text": "Blood pressure"},
		"effectiveDateTime": "2024-06-01",
		"component": [
			{"code": {"text": "Systolic"}, "valueQuantity": {"value": 120, "unit": "mmHg"}},
			{"code": {"text": "Diastolic"}, "valueQuantity": {"value": 80, "unit": "mmHg"}}
		]
	}`

	result, _, err := MapResponse(KindVitalSign, []byte(observation), false)
	require.NoError(t, err)

	vital := result.(responses.VitalSign)
	assert.Equal(t, "Blood pressure", vital.Type)
	require.Len(t, vital.Components, 2)
	assert.Equal(t, "Systolic", vital.Components[0].Type)
	assert.Equal(t, "120", vital.Components[0].Value)
	assert.Equal(t, "80", vital.Components[1].Value)
}

func TestMapMedication(t *testing.T) {
	medication := `{
		"resourceType": "MedicationRequest",
		"id": "med-1",
		"status": "active",
		"medicationCodeableConcept": {"text": "Lisinopril 10mg"},
		"authoredOn": "2024-03-15",
		"requester": {"display": "Dr. Smith"},
		"dosageInstruction": [{"text": "Once daily", "route": {"coding": [{"display": "Oral"}]}}]
	}`

	result, _, err := MapResponse(KindMedication, []byte(medication), false)
	require.NoError(t, err)

	med := result.(responses.Medication)
	assert.Equal(t, "Lisinopril 10mg", med.Name)
	assert.Equal(t, "Once daily", med.Dosage)
	assert.Equal(t, "Oral", med.Route)
	assert.Equal(t, "Dr. Smith", med.Prescriber)
	assert.Equal(t, "2024-03-15", med.PrescribedDate)
}

func TestMapAllergy(t *testing.T) {
	allergy := `{
		"resourceType": "AllergyIntolerance",
		"id": "alg-1",
		"clinicalStatus": {"coding": [{"code": "active"}]},
		"code": {"text": "Penicillin"},
		"criticality": "high",
		"recordedDate": "2020-01-01",
		"reaction": [{"manifestation": [{"text": "Hives"}], "severity": "moderate"}]
	}`

	result, _, err := MapResponse(KindAllergy, []byte(allergy), false)
	require.NoError(t, err)

	mapped := result.(responses.Allergy)
	assert.Equal(t, "Penicillin", mapped.Substance)
	assert.Equal(t, "Hives", mapped.Reaction)
	assert.Equal(t, "moderate", mapped.Severity)
	assert.Equal(t, "high", mapped.Criticality)
	assert.Equal(t, "active", mapped.Status)
}

func TestMapCondition(t *testing.T) {
	condition := `{
		"resourceType": "Condition",
		"id": "cond-1",
		"clinicalStatus": {"coding": [{"code": "active"}]},
		"verificationStatus": {"coding": [{"code": "confirmed"}]},
		"category": [{"coding": [{"display": "Problem List Item"}]}],
		"code": {"text": "Hypertension"},
		"onsetDateTime": "2019-07-01",
		"recordedDate": "2019-07-02"
	}`

	result, _, err := MapResponse(KindCondition, []byte(condition), false)
	require.NoError(t, err)

	mapped := result.(responses.Condition)
	assert.Equal(t, "Hypertension", mapped.Name)
	assert.Equal(t, "active", mapped.ClinicalStatus)
	assert.Equal(t, "confirmed", mapped.VerificationStatus)
	assert.Equal(t, "Problem List Item", mapped.Category)
	assert.Equal(t, "2019-07-01", mapped.OnsetDate)
}

func TestMapEncounter(t *testing.T) {
	encounter := `{
		"resourceType": "Encounter",
		"id": "enc-1",
		"status": "finished",
		"class": {"code": "AMB", "display": "ambulatory"},
		"type": [{"text": "Office Visit"}],
		"period": {"start": "2024-02-01T09:00:00Z", "end": "2024-02-01T09:30:00Z"},
		"location": [{"location": {"display": "Clinic A"}}],
		"participant": [{"individual": {"display": "Dr. Jones"}}]
	}`

	result, _, err := MapResponse(KindEncounter, []byte(encounter), false)
	require.NoError(t, err)

	mapped := result.(responses.Encounter)
	assert.Equal(t, "Office Visit", mapped.Type)
	assert.Equal(t, "ambulatory", mapped.Class)
	assert.Equal(t, "finished", mapped.Status)
	assert.Equal(t, "2024-02-01T09:00:00Z", mapped.StartDate)
	assert.Equal(t, "Clinic A", mapped.Location)
	assert.Equal(t, "Dr. Jones", mapped.Provider)
}

func TestMapImmunization(t *testing.T) {
	immunization := `{
		"resourceType": "Immunization",
		"id": "imm-1",
		"status": "completed",
		"vaccineCode": {"text": "Influenza"},
		"occurrenceDateTime": "2023-10-15",
		"lotNumber": "LOT-7",
		"protocolApplied": [{"doseNumberPositiveInt": 2}]
	}`

	result, _, err := MapResponse(KindImmunization, []byte(immunization), false)
	require.NoError(t, err)

	mapped := result.(responses.Immunization)
	assert.Equal(t, "Influenza", mapped.Vaccine)
	assert.Equal(t, 2, mapped.DoseNumber)
	assert.Equal(t, "LOT-7", mapped.LotNumber)
}

func TestMapDocument(t *testing.T) {
	document := `{
		"resourceType": "DocumentReference",
		"id": "doc-1",
		"status": "current",
		"type": {"text": "Discharge Summary"},
		"category": [{"text": "Clinical Note"}],
		"date": "2024-01-20",
		"content": [{"attachment": {"contentType": "application/pdf", "url": "Binary/b1", "title": "Summary", "data": "aGVsbG8="}}]
	}`

	result, _, err := MapResponse(KindDocument, []byte(document), false)
	require.NoError(t, err)

	mapped := result.(responses.Document)
	assert.Equal(t, "Discharge Summary", mapped.Type)
	assert.Equal(t, "Clinical Note", mapped.Category)
	assert.Equal(t, "application/pdf", mapped.ContentType)
	assert.Equal(t, "Binary/b1", mapped.URL)
	assert.Equal(t, "aGVsbG8=", mapped.AttachmentData)
	assert.Equal(t, "Summary", mapped.Title, "title falls back to the attachment title")
}

func TestMapProcedure(t *testing.T) {
	procedure := `{
		"resourceType": "Procedure",
		"id": "proc-1",
		"status": "completed",
		"code": {"text": "Appendectomy"},
		"performedPeriod": {"start": "2022-09-09T13:00:00Z"},
		"performer": [{"actor": {"display": "Dr. Lee"}}],
		"bodySite": [{"text": "Abdomen"}]
	}`

	result, _, err := MapResponse(KindProcedure, []byte(procedure), false)
	require.NoError(t, err)

	mapped := result.(responses.Procedure)
	assert.Equal(t, "Appendectomy", mapped.Name)
	assert.Equal(t, "2022-09-09T13:00:00Z", mapped.PerformedDate)
	assert.Equal(t, "Dr. Lee", mapped.Performer)
	assert.Equal(t, "Abdomen", mapped.BodySite)
}

func TestMapBundleIsolatesMalformedEntries(t *testing.T) {
	bundle := `{
		"resourceType": "Bundle",
		"entry": [
			{"resource": {"resourceType": "Patient", "id": "good"}},
			{"resource": "not an object"},
			{"resource": {"resourceType": "Patient", "id": "also-good"}}
		]
	}`

	result, entryErrs, err := MapResponse(KindPatient, []byte(bundle), true)
	require.NoError(t, err)
	require.Len(t, entryErrs, 1)

	items := result.([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "good", items[0].(responses.Patient).ID)
	assert.Equal(t, "also-good", items[1].(responses.Patient).ID)
}

func TestMapEmptyBundleYieldsEmptySlice(t *testing.T) {
	result, entryErrs, err := MapResponse(KindPatient, []byte(`{"resourceType":"Bundle","type":"searchset"}`), true)
	require.NoError(t, err)
	require.Empty(t, entryErrs)
	assert.Empty(t, result.([]interface{}))
}

func TestMapUnknownKind(t *testing.T) {
	_, _, err := MapResponse(Kind("telepathy"), []byte(`{}`), false)
	assert.Error(t, err)
}
