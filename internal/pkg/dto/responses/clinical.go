package responses

// Flattened clinical DTOs the dashboard consumes. Every field is optional on
// the wire; absent upstream data degrades to the zero value, never an error.

type Patient struct {
	ID        string `json:"id,omitempty"`
	MRN       string `json:"mrn,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	DOB       string `json:"dob,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Active    bool   `json:"active"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	City      string `json:"city,omitempty"`
}

type LabResult struct {
	ID             string `json:"id,omitempty"`
	TestName       string `json:"testName,omitempty"`
	Value          string `json:"value,omitempty"`
	Unit           string `json:"unit,omitempty"`
	ReferenceRange string `json:"referenceRange,omitempty"`
	Interpretation string `json:"interpretation,omitempty"`
	Status         string `json:"status,omitempty"`
	EffectiveDate  string `json:"effectiveDate,omitempty"`
}

type Medication struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	Dosage         string `json:"dosage,omitempty"`
	Route          string `json:"route,omitempty"`
	Status         string `json:"status,omitempty"`
	PrescribedDate string `json:"prescribedDate,omitempty"`
	Prescriber     string `json:"prescriber,omitempty"`
}

type Allergy struct {
	ID           string `json:"id,omitempty"`
	Substance    string `json:"substance,omitempty"`
	Reaction     string `json:"reaction,omitempty"`
	Severity     string `json:"severity,omitempty"`
	Criticality  string `json:"criticality,omitempty"`
	Status       string `json:"status,omitempty"`
	RecordedDate string `json:"recordedDate,omitempty"`
}

type Condition struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name,omitempty"`
	ClinicalStatus     string `json:"clinicalStatus,omitempty"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
	Category           string `json:"category,omitempty"`
	OnsetDate          string `json:"onsetDate,omitempty"`
	RecordedDate       string `json:"recordedDate,omitempty"`
}

type VitalSign struct {
	ID            string           `json:"id,omitempty"`
	Type          string           `json:"type,omitempty"`
	Value         string           `json:"value,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	EffectiveDate string           `json:"effectiveDate,omitempty"`
	Components    []VitalComponent `json:"components,omitempty"`
}

type VitalComponent struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

type Encounter struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	Class     string `json:"class,omitempty"`
	Status    string `json:"status,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Location  string `json:"location,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

type Immunization struct {
	ID         string `json:"id,omitempty"`
	Vaccine    string `json:"vaccine,omitempty"`
	Status     string `json:"status,omitempty"`
	Date       string `json:"date,omitempty"`
	DoseNumber int    `json:"doseNumber,omitempty"`
	LotNumber  string `json:"lotNumber,omitempty"`
}

type Document struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	Date        string `json:"date,omitempty"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"contentType,omitempty"`

	// Inline attachment payload carried through mapping so the gateway can
	// offload it to object storage; never serialized to the caller.
	AttachmentData string `json:"-"`
}

type Procedure struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	Status        string `json:"status,omitempty"`
	PerformedDate string `json:"performedDate,omitempty"`
	Performer     string `json:"performer,omitempty"`
	BodySite      string `json:"bodySite,omitempty"`
}

type HospitalHealth struct {
	HospitalID string `json:"hospital_id"`
	Status     string `json:"status"`
	CheckedAt  string `json:"checked_at"`
}
