package services

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// TermHint maps a colloquial word or phrase to its English medical term.
type TermHint struct {
	Phrase string
	Term   string
}

// SymptomVocabulary is the colloquial symptom dictionary of one language.
type SymptomVocabulary struct {
	Language entities.Language
	Hints    []TermHint
}

// BodyPainExamples show the reasoning service how to keep body part and pain together.
var BodyPainExamples = []TermHint{
	{"kai vali", "hand pain"},
	{"kaal vali", "leg pain"},
	{"kadupu noppi", "stomach pain"},
	{"tala noppi", "headache"},
	{"gunde noppi", "chest pain"},
	{"muru noppi", "knee pain"},
	{"veepu noppi", "back pain"},
	{"melu noppi", "neck pain"},
}

// SymptomVocabularies are rendered into the symptom instruction in this order.
var SymptomVocabularies = []SymptomVocabulary{
	{Language: entities.LanguageTelugu, Hints: []TermHint{
		{"noppi", "pain"}, {"jwaram", "fever"}, {"daggulu", "cough"}, {"vanthi", "vomit"},
		{"gunde", "chest"}, {"tala", "head"}, {"kadupu", "stomach"}, {"kalu", "leg"},
		{"kai", "hand"}, {"veepu", "back"}, {"muru", "knee"},
	}},
	{Language: entities.LanguageHindi, Hints: []TermHint{
		{"dard", "pain"}, {"bukhar", "fever"}, {"khansi", "cough"}, {"ulti", "vomit"},
		{"seena", "chest"}, {"sar", "head"}, {"pet", "stomach"}, {"pair", "leg"},
		{"haath", "hand"}, {"kamar", "back"}, {"ghutna", "knee"},
	}},
	{Language: entities.LanguageTamil, Hints: []TermHint{
		{"vali", "pain"}, {"kaichal", "fever"}, {"irumal", "cough"}, {"vanthi", "vomit"},
		{"nenja", "chest"}, {"thalai", "head"}, {"vayiru", "stomach"}, {"kaal", "leg"},
		{"kai", "hand"}, {"muppu", "back"},
	}},
	{Language: entities.LanguageMalayalam, Hints: []TermHint{
		{"veda", "pain"}, {"pani", "fever"}, {"irumal", "cough"}, {"oki", "vomit"},
		{"maarbu", "chest"}, {"thala", "head"}, {"vayaru", "stomach"}, {"kaal", "leg"},
		{"kai", "hand"}, {"novu", "pain"},
	}},
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

var symptomTemplate = template.Must(template.New("symptoms").Funcs(promptFuncs).Parse(
	`You are a medical assistant. Patient spoke in {{.Language}}. ` +
		`Extract their health symptoms as 1-{{.MaxTerms}} clear English medical terms. ` +
		`IMPORTANT: Combine body part + pain as one term. Examples: ` +
		`{{range $i, $h := .Examples}}{{if $i}}, {{end}}{{$h.Phrase}} = {{$h.Term}}{{end}}. ` +
		`Language hints - ` +
		`{{range .Vocabularies}}{{.Language}}: {{range $i, $h := .Hints}}{{if $i}},{{end}}{{$h.Phrase}}={{$h.Term}}{{end}}. {{end}}` +
		`Rules: Return ONLY English medical terms comma separated. Max {{.MaxTerms}} terms. ` +
		`Keep body+pain together as one term like 'hand pain' not separate 'hand' and 'pain'.`,
))

var triageTemplate = template.Must(template.New("triage").Funcs(promptFuncs).Parse(
	`You are a hospital triage doctor. A patient has these symptoms: "{{.Symptoms}}"

Available departments: {{join .Departments ", "}}

Rules:
- Fever with body pain/leg pain/headache = General Medicine (viral fever, dengue, malaria)
- Chest pain, palpitation, BP issues, arm numbness = Cardiology
- Seizure, stroke, paralysis, memory loss, severe headache with vomiting = Neurology
- Bone fracture, joint pain, knee/back/shoulder pain WITHOUT fever = Orthopedics
- Pregnancy, periods, female reproductive issues = Gynecology
- Child/baby/infant patients = Pediatrics
- Everything else = General Medicine
- If symptoms belong to 2 different departments genuinely (e.g. knee fracture + chest pain) list both
- Maximum {{.MaxDepartments}} departments

Respond ONLY with department names separated by comma. Nothing else.
Example: Cardiology
Example: General Medicine, Orthopedics`,
))

const (
	languagePrompt = "Identify the language of this spoken text. " +
		"Return ONLY one word from: English, Hindi, Telugu, Tamil, Malayalam. " +
		"Default to English if unsure."

	namePrompt = "Extract the person's name from this text and write it in English Roman letters only. " +
		"Remove filler phrases like 'my name is', 'mera naam', 'naa peru', 'en peyar', 'ente peru' etc. " +
		"If name is in Telugu/Hindi/Tamil/Malayalam script, transliterate it to English. " +
		"Example: 'నా పేరు పూర్ణిమ' → 'Purnima', 'मेरा नाम सुरेश' → 'Suresh'. " +
		"Return ONLY the name in English letters, 1-3 words max."

	agePrompt = "Extract the patient's age as a number between 1 and 120. Return ONLY digits. " +
		"If the text does not state a human age, return UNKNOWN."

	durationPrompt = "Convert to duration. Return ONLY like: 3 days or 1 week"

	userPrefix = "Patient said: "
)

// Token budgets per reasoning call.
const (
	languageMaxTokens = 150
	nameMaxTokens     = 15
	ageMaxTokens      = 10
	symptomMaxTokens  = 60
	durationMaxTokens = 15
	triageMaxTokens   = 150
)

// SymptomInstruction renders the symptom extraction instruction for a language.
func SymptomInstruction(lang entities.Language) string {
	return render(symptomTemplate, struct {
		Language     entities.Language
		MaxTerms     int
		Examples     []TermHint
		Vocabularies []SymptomVocabulary
	}{
		Language:     lang,
		MaxTerms:     entities.MaxSymptomTerms,
		Examples:     BodyPainExamples,
		Vocabularies: SymptomVocabularies,
	})
}

// TriageInstruction renders the department classification instruction.
func TriageInstruction(symptoms string, departments []string) string {
	return render(triageTemplate, struct {
		Symptoms       string
		Departments    []string
		MaxDepartments int
	}{
		Symptoms:       symptoms,
		Departments:    departments,
		MaxDepartments: maxTriageDepartments,
	})
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	// The templates are static and their data is typed; Execute cannot fail here.
	_ = t.Execute(&buf, data)
	return buf.String()
}
