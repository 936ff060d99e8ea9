package entities

// Priority is the queue urgency of a patient
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
)

// DepartmentEntry is a department as presented in a routing decision
type DepartmentEntry struct {
	Name      string `json:"name"`
	Floor     int    `json:"floor"`
	FloorWord string `json:"fw"`
	Doctor    string `json:"doctor"`
	Color     string `json:"color"`
}

// TriageSource records which step produced a decision
type TriageSource string

const (
	TriageSourceEmergency TriageSource = "emergency_keyword"
	TriageSourceReasoning TriageSource = "reasoning"
	TriageSourceKeywords  TriageSource = "keyword_scoring"
)

// TriageDecision routes a patient to one or two departments.
// Departments is never empty and holds at most two entries. When Emergency
// is set it holds exactly the Emergency entry.
type TriageDecision struct {
	Primary     string            `json:"department"`
	Emergency   bool              `json:"emergency"`
	Priority    Priority          `json:"priority"`
	Departments []DepartmentEntry `json:"all_departments"`
	Source      TriageSource      `json:"-"`
}

// PrimaryEntry returns the first department entry.
func (d TriageDecision) PrimaryEntry() DepartmentEntry {
	if len(d.Departments) == 0 {
		return DefaultCatalog.MustGet(DepartmentGeneralMedicine).Entry()
	}
	return d.Departments[0]
}
