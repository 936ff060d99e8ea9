package entities

import "strings"

const (
	DepartmentCardiology      = "Cardiology"
	DepartmentNeurology       = "Neurology"
	DepartmentOrthopedics     = "Orthopedics"
	DepartmentPediatrics      = "Pediatrics"
	DepartmentGynecology      = "Gynecology"
	DepartmentGeneralMedicine = "General Medicine"
	DepartmentEmergency       = "Emergency"
)

// Department is a clinical department patients can be routed to
type Department struct {
	Name      string
	Floor     int
	FloorWord string
	Doctor    string
	Color     string
	Keywords  []string
}

// Entry returns the routing entry shown to the patient.
func (d Department) Entry() DepartmentEntry {
	return DepartmentEntry{
		Name:      d.Name,
		Floor:     d.Floor,
		FloorWord: d.FloorWord,
		Doctor:    d.Doctor,
		Color:     d.Color,
	}
}

// Catalog is the fixed, ordered set of departments. Order decides keyword
// scoring ties.
type Catalog struct {
	departments []Department
	byName      map[string]int
}

// NewCatalog indexes departments by name. A later duplicate name is ignored.
func NewCatalog(departments ...Department) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(departments))}
	for _, d := range departments {
		key := strings.ToLower(d.Name)
		if _, dup := c.byName[key]; dup {
			continue
		}
		c.byName[key] = len(c.departments)
		c.departments = append(c.departments, d)
	}
	return c
}

// Get looks a department up by name, case-insensitively.
func (c *Catalog) Get(name string) (Department, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Department{}, false
	}
	return c.departments[i], true
}

// MustGet is Get for names known to be in the catalog.
func (c *Catalog) MustGet(name string) Department {
	d, ok := c.Get(name)
	if !ok {
		panic("entities: department " + name + " not in catalog")
	}
	return d
}

// All returns the departments in catalog order.
func (c *Catalog) All() []Department {
	out := make([]Department, len(c.departments))
	copy(out, c.departments)
	return out
}

// Routable returns every department except Emergency, in catalog order.
func (c *Catalog) Routable() []Department {
	out := make([]Department, 0, len(c.departments))
	for _, d := range c.departments {
		if d.Name != DepartmentEmergency {
			out = append(out, d)
		}
	}
	return out
}

// RoutableNames returns the names of Routable().
func (c *Catalog) RoutableNames() []string {
	routable := c.Routable()
	names := make([]string, len(routable))
	for i, d := range routable {
		names[i] = d.Name
	}
	return names
}

// DefaultCatalog is the hospital's department directory.
var DefaultCatalog = NewCatalog(
	Department{
		Name: DepartmentCardiology, Floor: 2, FloorWord: "Second Floor", Doctor: "Dr. Rajesh Kumar", Color: "#D92D20",
		Keywords: []string{
			"chest pain", "heart pain", "heart attack", "cardiac", "palpitation",
			"blood pressure", "high bp", "low bp", "chest tightness", "chest heaviness",
			"arm numbness", "heart failure", "heart blockage", "angina",
			"cholesterol", "hypertension", "chest", "heart", "bp",
		},
	},
	Department{
		Name: DepartmentNeurology, Floor: 3, FloorWord: "Third Floor", Doctor: "Dr. Priya Sharma", Color: "#7C3AED",
		Keywords: []string{
			"seizure", "epilepsy", "paralysis", "stroke", "memory loss", "migraine",
			"numbness", "trembling", "nerve pain", "brain pressure", "vision problem",
			"speech difficulty", "dizziness", "unconscious", "fainting", "brain", "nerve",
		},
	},
	Department{
		Name: DepartmentOrthopedics, Floor: 1, FloorWord: "First Floor", Doctor: "Dr. Anil Verma", Color: "#0369A1",
		Keywords: []string{
			"fracture", "bone", "joint pain", "knee pain", "back pain", "shoulder pain",
			"hip pain", "neck pain", "spine", "ankle", "wrist", "elbow", "arthritis",
			"muscle pain", "ligament", "disc", "knee", "back", "shoulder", "leg pain",
			"hand pain", "arm pain", "foot pain", "lower back",
		},
	},
	Department{
		Name: DepartmentPediatrics, Floor: 2, FloorWord: "Second Floor", Doctor: "Dr. Sunita Rao", Color: "#D97706",
		Keywords: []string{
			"child", "baby", "infant", "toddler", "kid", "vaccination", "newborn",
			"growth problem", "childhood", "pediatric",
		},
	},
	Department{
		Name: DepartmentGynecology, Floor: 3, FloorWord: "Third Floor", Doctor: "Dr. Meena Pillai", Color: "#DB2777",
		Keywords: []string{
			"pregnancy", "menstrual pain", "irregular periods", "vaginal discharge",
			"breast pain", "uterus", "ovary", "gynec", "female problem", "periods",
			"menstruation", "pregnancy complication", "period",
		},
	},
	Department{
		Name: DepartmentGeneralMedicine, Floor: 1, FloorWord: "First Floor", Doctor: "Dr. Suresh Nair", Color: "#059669",
		Keywords: []string{
			"fever", "cough", "cold", "viral", "flu", "infection", "weakness", "fatigue",
			"body pain", "vomiting", "nausea", "diarrhea", "constipation", "acidity",
			"gas", "loss of appetite", "headache", "stomach pain", "throat pain",
			"eye pain", "ear pain", "skin rash", "itching", "allergy", "diabetes",
			"thyroid", "anaemia", "weight loss", "swelling", "jaundice", "malaria",
			"dengue", "typhoid", "tuberculosis", "asthma", "breathlessness",
			"kidney problem", "kidney stone", "urinary problem", "liver problem",
			"stomach", "throat", "sore throat",
		},
	},
	Department{
		Name: DepartmentEmergency, Floor: 0, FloorWord: "Ground Floor", Doctor: "Emergency Team", Color: "#DC2626",
		Keywords: []string{
			"emergency", "severe", "accident", "heavy bleeding", "unconscious",
			"trauma", "heart attack", "stroke", "cannot breathe", "breathing difficulty",
			"cardiac arrest", "coughing blood", "blood in urine", "injury",
		},
	},
)

// EmergencyKeywords force Emergency routing when found in symptom text.
var EmergencyKeywords = []string{
	"chest pain", "heart attack", "heavy bleeding", "unconscious", "seizure",
	"severe pain", "accident", "trauma", "stroke", "cannot breathe", "breathing difficulty",
}

// MatchEmergencyKeyword returns the first emergency phrase found in text.
func MatchEmergencyKeyword(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range EmergencyKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
