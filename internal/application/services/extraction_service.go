package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
	apperrors "github.com/zatekoja/voicebyte/pkg/errors"
	"github.com/zatekoja/voicebyte/pkg/numerals"
)

// DurationPhrase is a spoken duration with its canonical English form.
type DurationPhrase struct {
	Phrase    string
	Canonical string
}

// DurationPhrases are checked in order as plain substrings of the transcript.
var DurationPhrases = []DurationPhrase{
	{"one day", "1 day"}, {"two days", "2 days"}, {"three days", "3 days"},
	{"four days", "4 days"}, {"five days", "5 days"},
	{"one week", "1 week"}, {"two weeks", "2 weeks"}, {"one month", "1 month"},
	{"okati roju", "1 day"}, {"rendu rojulu", "2 days"}, {"madu rojulu", "3 days"},
	{"oka vaaram", "1 week"}, {"rendu vaaram", "2 weeks"}, {"oka nela", "1 month"},
	{"ek din", "1 day"}, {"do din", "2 days"}, {"teen din", "3 days"},
	{"ek hafte", "1 week"}, {"ek mahina", "1 month"},
	{"oru naal", "1 day"}, {"irandu naal", "2 days"}, {"oru vaaram", "1 week"},
	{"oru divasam", "1 day"}, {"randu divasam", "2 days"}, {"oru azhcha", "1 week"},
}

var durationReply = regexp.MustCompile(`(?i)(\d+)\s*(days?|weeks?|months?)\b`)

// ExtractionService pulls structured intake fields out of transcripts.
type ExtractionService struct {
	reasoning  Reasoner
	normalizer *numerals.Normalizer
}

// NewExtractionService creates an extraction service on the shared normalizer.
func NewExtractionService(reasoning Reasoner) *ExtractionService {
	return NewExtractionServiceWithNormalizer(reasoning, numerals.Default)
}

// NewExtractionServiceWithNormalizer creates an extraction service with a specific normalizer.
func NewExtractionServiceWithNormalizer(reasoning Reasoner, normalizer *numerals.Normalizer) *ExtractionService {
	return &ExtractionService{
		reasoning:  reasoning,
		normalizer: normalizer,
	}
}

// Extract returns the value of field found in transcript. The only error is
// a ValidationError for an unknown field; every other failure resolves to
// the field's fallback value.
func (s *ExtractionService) Extract(ctx context.Context, field entities.Field, transcript string, lang entities.Language) (entities.ExtractionResult, error) {
	transcript = strings.TrimSpace(transcript)

	var value string
	var fallback bool
	switch field {
	case entities.FieldMobile:
		value, fallback = s.ExtractMobile(transcript)
	case entities.FieldAge:
		value, fallback = s.ExtractAge(ctx, transcript)
	case entities.FieldDays:
		value, fallback = s.ExtractDuration(ctx, transcript)
	case entities.FieldName:
		value, fallback = s.ExtractName(ctx, transcript)
	case entities.FieldSymptoms:
		value, fallback = s.ExtractSymptoms(ctx, transcript, lang)
	default:
		return entities.ExtractionResult{}, apperrors.NewValidationError(fmt.Sprintf("unknown field %q", field))
	}

	log.Debug().
		Str("field", string(field)).
		Str("language", string(lang)).
		Bool("fallback_used", fallback).
		Msg("field extracted")

	return entities.ExtractionResult{Field: field, Value: value, FallbackUsed: fallback}, nil
}

// ExtractMobile keeps the digits of the normalized transcript. It never
// consults the reasoning service.
func (s *ExtractionService) ExtractMobile(transcript string) (string, bool) {
	digits := numerals.Digits(s.normalizer.Normalize(transcript))
	switch {
	case len(digits) >= entities.MobileDigits:
		return digits[:entities.MobileDigits], false
	case len(digits) >= entities.MinMobileDigits:
		return digits, false
	default:
		return entities.MobileNotProvided, true
	}
}

// ExtractAge prefers a literal compound phrase, then the first plausible
// digit run, then the reasoning service. The result is "Unknown" or an
// integer in [1,120].
func (s *ExtractionService) ExtractAge(ctx context.Context, transcript string) (string, bool) {
	lower := strings.ToLower(transcript)
	if p, ok := s.normalizer.Compounds().FirstIn(lower, func(p numerals.Phrase) bool {
		return plausibleAge(p.Value)
	}); ok {
		return p.Digits, false
	}

	for _, run := range numerals.DigitRuns(s.normalizer.Normalize(transcript)) {
		if n, err := strconv.Atoi(run); err == nil && plausibleAge(n) {
			return strconv.Itoa(n), false
		}
	}

	reply, err := s.reasoning.Complete(ctx, agePrompt, userPrefix+transcript, ageMaxTokens)
	if err != nil {
		log.Debug().Err(err).Msg("age fallback: reasoning unavailable")
		return entities.AgeUnknown, true
	}
	return parseAgeReply(reply), true
}

// parseAgeReply accepts a reply holding exactly one digit run in range.
func parseAgeReply(reply string) string {
	if strings.EqualFold(strings.TrimSpace(reply), "unknown") {
		return entities.AgeUnknown
	}
	runs := numerals.DigitRuns(reply)
	if len(runs) != 1 {
		return entities.AgeUnknown
	}
	n, err := strconv.Atoi(runs[0])
	if err != nil || !plausibleAge(n) {
		return entities.AgeUnknown
	}
	return strconv.Itoa(n)
}

func plausibleAge(n int) bool {
	return n >= entities.MinAge && n <= entities.MaxAge
}

// ExtractDuration returns a canonical English duration such as "3 days".
func (s *ExtractionService) ExtractDuration(ctx context.Context, transcript string) (string, bool) {
	lower := strings.ToLower(transcript)
	for _, p := range DurationPhrases {
		if strings.Contains(lower, p.Phrase) {
			return p.Canonical, false
		}
	}

	if runs := numerals.DigitRuns(s.normalizer.Normalize(transcript)); len(runs) > 0 {
		n, err := strconv.Atoi(runs[0])
		if err != nil {
			// Only an out-of-range run fails to parse; it is far above 30.
			return runs[0] + " weeks", false
		}
		return formatDays(n), false
	}

	reply, err := s.reasoning.Complete(ctx, durationPrompt, userPrefix+transcript, durationMaxTokens)
	if err != nil {
		log.Debug().Err(err).Msg("duration fallback: reasoning unavailable")
		return entities.DefaultDuration, true
	}
	return parseDurationReply(reply), true
}

// formatDays counts above 30 are reported as weeks without conversion.
func formatDays(n int) string {
	switch {
	case n == 1:
		return "1 day"
	case n <= 30:
		return strconv.Itoa(n) + " days"
	default:
		return strconv.Itoa(n) + " weeks"
	}
}

func parseDurationReply(reply string) string {
	line := strings.TrimSpace(strings.SplitN(reply, "\n", 2)[0])
	line = truncateRunes(line, entities.MaxDurationReplySize)

	m := durationReply.FindStringSubmatch(line)
	if m == nil {
		return entities.DefaultDuration
	}
	return m[1] + " " + strings.ToLower(m[2])
}

// ExtractName asks the reasoning service for a Latin-letter name of at most
// three words. Without it, the last two transcript tokens are used.
func (s *ExtractionService) ExtractName(ctx context.Context, transcript string) (string, bool) {
	reply, err := s.reasoning.Complete(ctx, namePrompt, transcript, nameMaxTokens)
	if err == nil {
		if name := cleanName(reply); name != "" {
			return name, false
		}
	} else {
		log.Debug().Err(err).Msg("name fallback: reasoning unavailable")
	}

	tokens := strings.Fields(transcript)
	if len(tokens) < 2 {
		return entities.DefaultName, true
	}
	return titleCase(strings.Join(tokens[len(tokens)-2:], " ")), true
}

func cleanName(reply string) string {
	line := strings.SplitN(strings.TrimSpace(reply), "\n", 2)[0]
	line = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), r == ' ', r == '-', r == '\'', r == '.':
			return r
		default:
			return ' '
		}
	}, line)

	words := strings.Fields(line)
	if len(words) > entities.MaxNameWords {
		words = words[:entities.MaxNameWords]
	}
	return titleCase(strings.Join(words, " "))
}

// ExtractSymptoms asks the reasoning service for up to four English
// medical terms. Anything else collapses to "general complaint".
func (s *ExtractionService) ExtractSymptoms(ctx context.Context, transcript string, lang entities.Language) (string, bool) {
	reply, err := s.reasoning.Complete(ctx, SymptomInstruction(lang), userPrefix+transcript, symptomMaxTokens)
	if err != nil {
		log.Debug().Err(err).Msg("symptom fallback: reasoning unavailable")
		return entities.GeneralComplaint, true
	}

	reply = strings.TrimSpace(reply)
	if reply == "" || len(reply) > entities.MaxSymptomLength {
		return entities.GeneralComplaint, true
	}

	terms := splitTerms(reply)
	if len(terms) == 0 || len(terms) > entities.MaxSymptomTerms {
		return entities.GeneralComplaint, true
	}
	return strings.Join(terms, ", "), false
}

// splitTerms splits a comma list, dropping blanks.
func splitTerms(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// titleCase builds a Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
