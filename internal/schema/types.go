package schema

import "errors"

// ErrUnknownDocumentType is returned when a doc type is not in the registry.
var ErrUnknownDocumentType = errors.New("unknown document type")

// DocType identifies one of the supported document categories.
type DocType string

const (
	AadhaarCard          DocType = "aadhaar_card"
	Marksheet10th        DocType = "marksheet_10th"
	Marksheet12th        DocType = "marksheet_12th"
	TransferCertificate  DocType = "transfer_certificate"
	MigrationCertificate DocType = "migration_certificate"
	EntranceScorecard    DocType = "entrance_scorecard"
	AdmitCard            DocType = "admit_card"
	CasteCertificate     DocType = "caste_certificate"
	DomicileCertificate  DocType = "domicile_certificate"
)

// Kind is the semantic type of a canonical field. It selects the cleaning
// transform applied during normalization.
type Kind string

const (
	KindText       Kind = "text"
	KindName       Kind = "name"
	KindDate       Kind = "date"
	KindAadhaar    Kind = "aadhaar_number"
	KindPhone      Kind = "phone"
	KindYear       Kind = "year"
	KindPercentage Kind = "percentage"
	KindNumber     Kind = "number"
	KindSubjects   Kind = "subjects"
	KindEnum       Kind = "enum"
)

// Field declares a canonical output field: its name, the raw key aliases the
// model is known to emit for it (in priority order), its semantic kind, and a
// human-readable rule surfaced in prompts and schema introspection.
type Field struct {
	Name    string   `json:"name"`
	Aliases []string `json:"-"`
	Kind    Kind     `json:"kind"`
	Rule    string   `json:"rule,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

// DocumentTypeSchema is the fixed schema for one document type.
type DocumentTypeSchema struct {
	DocType     DocType `json:"docType"`
	Description string  `json:"description"`
	Required    []Field `json:"requiredFields"`
	Optional    []Field `json:"optionalFields"`
}

// Fields returns required fields followed by optional fields, in declared order.
func (s DocumentTypeSchema) Fields() []Field {
	out := make([]Field, 0, len(s.Required)+len(s.Optional))
	out = append(out, s.Required...)
	return append(out, s.Optional...)
}

// IsRequired reports whether the canonical field name is required.
func (s DocumentTypeSchema) IsRequired(name string) bool {
	for _, f := range s.Required {
		if f.Name == name {
			return true
		}
	}
	return false
}
