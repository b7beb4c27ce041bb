package schema

import "fmt"

// registry is built once at init and never mutated afterwards, so Lookup is
// safe for concurrent use without synchronization.
var registry = map[DocType]DocumentTypeSchema{}

var order = []DocType{
	AadhaarCard,
	Marksheet10th,
	Marksheet12th,
	TransferCertificate,
	MigrationCertificate,
	EntranceScorecard,
	AdmitCard,
	CasteCertificate,
	DomicileCertificate,
}

// Lookup returns the schema for the given doc type.
func Lookup(dt DocType) (DocumentTypeSchema, error) {
	s, ok := registry[dt]
	if !ok {
		return DocumentTypeSchema{}, fmt.Errorf("%w: %q", ErrUnknownDocumentType, string(dt))
	}
	return s, nil
}

// ParseDocType validates a raw string against the supported set.
func ParseDocType(raw string) (DocType, error) {
	dt := DocType(raw)
	if _, ok := registry[dt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, raw)
	}
	return dt, nil
}

// All returns every registered schema in a stable order.
func All() []DocumentTypeSchema {
	out := make([]DocumentTypeSchema, 0, len(order))
	for _, dt := range order {
		out = append(out, registry[dt])
	}
	return out
}

// SupportedTypes returns the supported doc type identifiers in a stable order.
func SupportedTypes() []DocType {
	out := make([]DocType, len(order))
	copy(out, order)
	return out
}

func register(s DocumentTypeSchema) {
	registry[s.DocType] = s
}

func init() {
	register(DocumentTypeSchema{
		DocType:     AadhaarCard,
		Description: "Indian Aadhaar Identity Card",
		Required: []Field{
			{Name: "Name", Aliases: []string{"full_name", "name", "holder_name", "aadhaar_holder_name"}, Kind: KindName},
			{Name: "AadhaarNumber", Aliases: []string{"aadhaar_number", "aadhar_number", "uid", "number"}, Kind: KindAadhaar, Rule: "Must be exactly 12 digits (spaces and hyphens will be removed)"},
			{Name: "DOB", Aliases: []string{"date_of_birth", "dob", "birth_date", "date_birth"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY or DD/MM/YYYY"},
			{Name: "Address", Aliases: []string{"address", "permanent_address", "residential_address", "full_address"}, Kind: KindText},
		},
		Optional: []Field{
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name", "parent_name"}, Kind: KindName},
			{Name: "Gender", Aliases: []string{"gender", "sex"}, Kind: KindEnum, Allowed: []string{"Male", "Female", "Other"}},
			{Name: "MobileNumber", Aliases: []string{"mobile_number", "mobile", "phone_number", "contact"}, Kind: KindPhone, Rule: "Must be 10 digits"},
		},
	})

	register(DocumentTypeSchema{
		DocType:     Marksheet10th,
		Description: "10th Class/Grade Marksheet",
		Required: []Field{
			{Name: "Name", Aliases: []string{"student_name", "name", "candidate_name", "full_name"}, Kind: KindName},
			{Name: "RollNumber", Aliases: []string{"roll_number", "roll_no", "admission_number", "enrollment_number"}, Kind: KindText, Rule: "Alphanumeric roll number"},
			{Name: "BoardName", Aliases: []string{"board_name", "board", "education_board"}, Kind: KindName},
			{Name: "ExamYear", Aliases: []string{"passing_year", "year_of_passing", "exam_year", "year"}, Kind: KindYear, Rule: "Must be 4-digit year (e.g., 2023)"},
			{Name: "Subjects", Aliases: []string{"subjects_marks", "marks", "subject_wise_marks", "grades"}, Kind: KindSubjects, Rule: "Object with subject names as keys and marks as numeric values"},
		},
		Optional: []Field{
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name"}, Kind: KindName},
			{Name: "MotherName", Aliases: []string{"mother_name", "mothers_name"}, Kind: KindName},
			{Name: "SchoolName", Aliases: []string{"school_name", "institution_name", "institution"}, Kind: KindName},
			{Name: "TotalMarks", Aliases: []string{"total_marks", "maximum_marks", "full_marks"}, Kind: KindNumber, Rule: "Numeric total marks"},
			{Name: "Percentage", Aliases: []string{"percentage", "percent", "marks_percentage"}, Kind: KindPercentage, Rule: "Numeric value between 0-100"},
			{Name: "Result", Aliases: []string{"result", "exam_result", "status"}, Kind: KindEnum, Allowed: []string{"Pass", "Fail"}},
		},
	})

	register(DocumentTypeSchema{
		DocType:     Marksheet12th,
		Description: "12th Class/Grade Marksheet",
		Required: []Field{
			{Name: "Name", Aliases: []string{"student_name", "name", "candidate_name", "full_name"}, Kind: KindName},
			{Name: "RollNumber", Aliases: []string{"roll_number", "roll_no", "admission_number", "enrollment_number"}, Kind: KindText},
			{Name: "BoardName", Aliases: []string{"board_name", "board", "education_board"}, Kind: KindName},
			{Name: "Stream", Aliases: []string{"stream", "course", "subject_combination", "specialization"}, Kind: KindEnum, Allowed: []string{"Science", "Commerce", "Arts"}, Rule: "Must be Science/Commerce/Arts"},
			{Name: "ExamYear", Aliases: []string{"passing_year", "year_of_passing", "exam_year", "year"}, Kind: KindYear, Rule: "Must be 4-digit year (e.g., 2023)"},
			{Name: "Subjects", Aliases: []string{"subjects_marks", "marks", "subject_wise_marks", "grades"}, Kind: KindSubjects, Rule: "Object with subject names as keys and marks as numeric values"},
		},
		Optional: []Field{
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name"}, Kind: KindName},
			{Name: "MotherName", Aliases: []string{"mother_name", "mothers_name"}, Kind: KindName},
			{Name: "SchoolName", Aliases: []string{"school_name", "institution_name", "institution"}, Kind: KindName},
			{Name: "TotalMarks", Aliases: []string{"total_marks", "maximum_marks", "full_marks"}, Kind: KindNumber},
			{Name: "Percentage", Aliases: []string{"percentage", "percent", "marks_percentage"}, Kind: KindPercentage, Rule: "Numeric value between 0-100"},
			{Name: "Grade", Aliases: []string{"grade", "overall_grade", "final_grade"}, Kind: KindText},
		},
	})

	register(DocumentTypeSchema{
		DocType:     TransferCertificate,
		Description: "School Transfer Certificate",
		Required: []Field{
			{Name: "Name", Aliases: []string{"student_name", "name", "full_name"}, Kind: KindName},
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name", "parent_name"}, Kind: KindName},
			{Name: "ClassStudied", Aliases: []string{"class_studied", "last_class", "grade"}, Kind: KindText, Rule: "Class/grade level (e.g., 10th, 12th)"},
			{Name: "SchoolName", Aliases: []string{"school_name", "institution_name", "institution"}, Kind: KindName},
			{Name: "DateOfLeaving", Aliases: []string{"date_of_leaving", "leaving_date", "tc_date"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY"},
		},
		Optional: []Field{
			{Name: "MotherName", Aliases: []string{"mother_name", "mothers_name"}, Kind: KindName},
			{Name: "DOB", Aliases: []string{"date_of_birth", "dob", "birth_date"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY"},
			{Name: "DateOfAdmission", Aliases: []string{"date_of_admission", "admission_date", "joining_date"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY"},
			{Name: "Caste", Aliases: []string{"caste", "category", "community"}, Kind: KindText},
			{Name: "Religion", Aliases: []string{"religion", "religious_belief"}, Kind: KindText},
			{Name: "Conduct", Aliases: []string{"conduct", "character", "behaviour"}, Kind: KindText},
		},
	})

	register(DocumentTypeSchema{
		DocType:     MigrationCertificate,
		Description: "University Migration Certificate",
		Required: []Field{
			{Name: "Name", Aliases: []string{"student_name", "name", "full_name"}, Kind: KindName},
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name"}, Kind: KindName},
			{Name: "UniversityName", Aliases: []string{"university_name", "university", "institution_name"}, Kind: KindName},
			{Name: "CourseName", Aliases: []string{"course_name", "course", "degree"}, Kind: KindText, Rule: "Full course name (e.g., Bachelor of Science)"},
			{Name: "ExamYear", Aliases: []string{"passing_year", "year_of_passing", "exam_year"}, Kind: KindYear, Rule: "Must be 4-digit year"},
		},
		Optional: []Field{
			{Name: "RollNumber", Aliases: []string{"roll_number", "roll_no"}, Kind: KindText},
			{Name: "RegistrationNumber", Aliases: []string{"registration_number", "registration_no", "reg_number"}, Kind: KindText},
			{Name: "Division", Aliases: []string{"division", "class_obtained"}, Kind: KindText, Rule: "First/Second/Third division or percentage"},
			{Name: "MigrationPurpose", Aliases: []string{"migration_purpose", "purpose"}, Kind: KindText},
		},
	})

	register(DocumentTypeSchema{
		DocType:     EntranceScorecard,
		Description: "Competitive Exam Scorecard (JEE/NEET/etc.)",
		Required: []Field{
			{Name: "Name", Aliases: []string{"candidate_name", "name", "student_name", "full_name"}, Kind: KindName},
			{Name: "RollNumber", Aliases: []string{"roll_number", "roll_no", "application_number"}, Kind: KindText},
			{Name: "ExamName", Aliases: []string{"exam_name", "examination", "test_name"}, Kind: KindText},
			{Name: "TotalScore", Aliases: []string{"total_score", "score", "marks_obtained"}, Kind: KindNumber, Rule: "Must be numeric"},
		},
		Optional: []Field{
			{Name: "Rank", Aliases: []string{"rank", "overall_rank", "air"}, Kind: KindNumber, Rule: "Must be numeric (overall rank)"},
			{Name: "Percentile", Aliases: []string{"percentile", "percentile_score"}, Kind: KindPercentage, Rule: "Must be numeric (0-100)"},
			{Name: "CategoryRank", Aliases: []string{"category_rank"}, Kind: KindNumber},
			{Name: "ExamDate", Aliases: []string{"exam_date", "date_of_exam"}, Kind: KindDate},
			{Name: "QualifyingMarks", Aliases: []string{"qualifying_marks", "cutoff_marks", "cutoff"}, Kind: KindNumber},
		},
	})

	register(DocumentTypeSchema{
		DocType:     AdmitCard,
		Description: "Examination Admit Card",
		Required: []Field{
			{Name: "Name", Aliases: []string{"candidate_name", "name", "student_name", "full_name"}, Kind: KindName},
			{Name: "RollNumber", Aliases: []string{"roll_number", "roll_no", "application_number"}, Kind: KindText},
			{Name: "ExamName", Aliases: []string{"exam_name", "examination", "test_name"}, Kind: KindText},
			{Name: "ExamDate", Aliases: []string{"exam_date", "date_of_exam", "date"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY or full date"},
		},
		Optional: []Field{
			{Name: "ExamCenter", Aliases: []string{"exam_center", "exam_centre", "center_name", "venue"}, Kind: KindText},
			{Name: "ExamTime", Aliases: []string{"exam_time", "reporting_time", "timing"}, Kind: KindText, Rule: "Time format (e.g., 9:00 AM - 12:00 PM)"},
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name"}, Kind: KindName},
		},
	})

	register(DocumentTypeSchema{
		DocType:     CasteCertificate,
		Description: "Caste Certificate",
		Required: []Field{
			{Name: "Name", Aliases: []string{"applicant_name", "name", "full_name"}, Kind: KindName},
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name", "parent_name"}, Kind: KindName},
			{Name: "Caste", Aliases: []string{"caste", "community"}, Kind: KindText},
			{Name: "Category", Aliases: []string{"category", "reservation_category"}, Kind: KindEnum, Allowed: []string{"SC", "ST", "OBC", "General"}, Rule: "Must be SC/ST/OBC/General"},
		},
		Optional: []Field{
			{Name: "CertificateNumber", Aliases: []string{"certificate_number", "certificate_no"}, Kind: KindText},
			{Name: "IssueDate", Aliases: []string{"issue_date", "date_of_issue", "issued_on"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY"},
			{Name: "IssuingAuthority", Aliases: []string{"issuing_authority", "issued_by", "authority"}, Kind: KindText},
			{Name: "ValidUntil", Aliases: []string{"valid_until", "valid_upto", "expiry_date"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY"},
			{Name: "Address", Aliases: []string{"address", "permanent_address"}, Kind: KindText},
		},
	})

	register(DocumentTypeSchema{
		DocType:     DomicileCertificate,
		Description: "Domicile/Residence Certificate",
		Required: []Field{
			{Name: "Name", Aliases: []string{"applicant_name", "name", "full_name"}, Kind: KindName},
			{Name: "FatherName", Aliases: []string{"father_name", "fathers_name", "parent_name"}, Kind: KindName},
			{Name: "State", Aliases: []string{"state", "state_name"}, Kind: KindName},
			{Name: "District", Aliases: []string{"district", "district_name"}, Kind: KindName},
		},
		Optional: []Field{
			{Name: "CertificateNumber", Aliases: []string{"certificate_number", "certificate_no"}, Kind: KindText},
			{Name: "IssueDate", Aliases: []string{"issue_date", "date_of_issue", "issued_on"}, Kind: KindDate, Rule: "Format: DD-MM-YYYY"},
			{Name: "IssuingAuthority", Aliases: []string{"issuing_authority", "issued_by", "authority"}, Kind: KindText},
			{Name: "Address", Aliases: []string{"address", "permanent_address"}, Kind: KindText},
			{Name: "DurationOfResidence", Aliases: []string{"duration_of_residence", "years_of_residence", "residing_since"}, Kind: KindText, Rule: "Number of years as resident"},
		},
	})
}
