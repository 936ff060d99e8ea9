package entities

import "strings"

// Language is one of the five supported intake languages
type Language string

const (
	LanguageEnglish   Language = "English"
	LanguageHindi     Language = "Hindi"
	LanguageTelugu    Language = "Telugu"
	LanguageTamil     Language = "Tamil"
	LanguageMalayalam Language = "Malayalam"
)

// SupportedLanguages lists the labels the language detector may return
var SupportedLanguages = []Language{
	LanguageEnglish,
	LanguageHindi,
	LanguageTelugu,
	LanguageTamil,
	LanguageMalayalam,
}

// ParseLanguage matches a label case-insensitively after trimming
// whitespace and a trailing period.
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	for _, l := range SupportedLanguages {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return LanguageEnglish, false
}

// LanguageOrDefault returns the language named by s, or English.
func LanguageOrDefault(s string) Language {
	l, _ := ParseLanguage(s)
	return l
}

// QuestionSet holds the spoken prompt for each intake field
type QuestionSet struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Mobile   string `json:"mobile"`
	Symptoms string `json:"symptoms"`
	Days     string `json:"days"`
}

// LanguageDetection is the result of identifying a transcript's language
type LanguageDetection struct {
	Language     Language    `json:"language"`
	Questions    QuestionSet `json:"questions"`
	FallbackUsed bool        `json:"-"`
}

var questions = map[Language]QuestionSet{
	LanguageEnglish: {
		Name:     "What is your full name?",
		Age:      "How old are you?",
		Mobile:   "Please say your 10-digit mobile number digit by digit.",
		Symptoms: "Please describe your health problem.",
		Days:     "How many days have you had this problem?",
	},
	LanguageHindi: {
		Name:     "आपका पूरा नाम क्या है?",
		Age:      "आपकी उम्र क्या है?",
		Mobile:   "कृपया अपना 10 अंकों का मोबाइल नंबर बोलें।",
		Symptoms: "अपनी बीमारी के बारे में बताएं।",
		Days:     "कितने दिनों से परेशान हैं?",
	},
	LanguageTelugu: {
		Name:     "మీ పూర్తి పేరు చెప్పండి.",
		Age:      "మీ వయసు ఎంత?",
		Mobile:   "మీ 10 అంకెల మొబైల్ నంబర్ చెప్పండి.",
		Symptoms: "మీ అనారోగ్యం గురించి చెప్పండి.",
		Days:     "ఎన్ని రోజులుగా ఈ సమస్య ఉంది?",
	},
	LanguageTamil: {
		Name:     "உங்கள் முழு பெயர் சொல்லுங்கள்.",
		Age:      "உங்கள் வயது என்ன?",
		Mobile:   "உங்கள் 10 இலக்க மொபைல் எண் சொல்லுங்கள்.",
		Symptoms: "உங்கள் உடல்நல பிரச்சனையை சொல்லுங்கள்.",
		Days:     "எத்தனை நாட்களாக இந்த பிரச்சனை?",
	},
	LanguageMalayalam: {
		Name:     "നിങ്ങളുടെ പൂർണ്ണ പേര് പറയൂ.",
		Age:      "നിങ്ങൾക്ക് എത്ര വയസ്സ്?",
		Mobile:   "നിങ്ങളുടെ 10 അക്ക മൊബൈൽ നമ്പർ പറയൂ.",
		Symptoms: "നിങ്ങളുടെ ആരോഗ്യ പ്രശ്നം പറയൂ.",
		Days:     "എത്ര ദിവസമായി ഈ പ്രശ്നം?",
	},
}

// QuestionsFor returns the prompts for l, falling back to English.
func QuestionsFor(l Language) QuestionSet {
	if q, ok := questions[l]; ok {
		return q
	}
	return questions[LanguageEnglish]
}
