package entities

// Field names an intake value extracted from a transcript
type Field string

const (
	FieldName     Field = "name"
	FieldAge      Field = "age"
	FieldMobile   Field = "mobile"
	FieldSymptoms Field = "symptoms"
	FieldDays     Field = "days"
)

// Fields lists every extractable field
var Fields = []Field{FieldName, FieldAge, FieldMobile, FieldSymptoms, FieldDays}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Sentinel values returned when nothing usable was extracted.
const (
	AgeUnknown           = "Unknown"
	MobileNotProvided    = "Not provided"
	DefaultDuration      = "1 day"
	DefaultName          = "Patient"
	GeneralComplaint     = "general complaint"
	MinAge               = 1
	MaxAge               = 120
	MinMobileDigits      = 6
	MobileDigits         = 10
	MaxNameWords         = 3
	MaxSymptomTerms      = 4
	MaxSymptomLength     = 150
	MaxDurationReplySize = 25
)

// ExtractionResult is one structured value pulled from a transcript
type ExtractionResult struct {
	Field        Field  `json:"field"`
	Value        string `json:"extracted"`
	FallbackUsed bool   `json:"fallback_used"`
}
