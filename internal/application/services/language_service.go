package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// LanguageService identifies which supported language a transcript is in.
type LanguageService struct {
	reasoning Reasoner
}

// NewLanguageService creates a language service.
func NewLanguageService(reasoning Reasoner) *LanguageService {
	return &LanguageService{reasoning: reasoning}
}

// Detect returns the transcript's language and its intake questions.
// Any reply outside the five labels, or a reasoning failure, means English.
func (s *LanguageService) Detect(ctx context.Context, transcript string) entities.LanguageDetection {
	lang := entities.LanguageEnglish
	fallback := true

	reply, err := s.reasoning.Complete(ctx, languagePrompt, transcript, languageMaxTokens)
	if err != nil {
		log.Warn().Err(err).Msg("language detection unavailable, defaulting to English")
	} else if parsed, ok := entities.ParseLanguage(reply); ok {
		lang, fallback = parsed, false
	} else {
		log.Debug().Str("reply", reply).Msg("unrecognised language label")
	}

	return entities.LanguageDetection{
		Language:     lang,
		Questions:    entities.QuestionsFor(lang),
		FallbackUsed: fallback,
	}
}
