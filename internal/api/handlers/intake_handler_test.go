package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/voicebyte/internal/api/handlers"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
	apperrors "github.com/zatekoja/voicebyte/pkg/errors"
)

type stubDetector struct {
	lang entities.Language
}

func (s *stubDetector) Detect(ctx context.Context, transcript string) entities.LanguageDetection {
	return entities.LanguageDetection{
		Language:     s.lang,
		Questions:    entities.QuestionsFor(s.lang),
		FallbackUsed: true,
	}
}

type stubExtractor struct {
	field entities.Field
	lang  entities.Language
}

func (s *stubExtractor) Extract(ctx context.Context, field entities.Field, transcript string, lang entities.Language) (entities.ExtractionResult, error) {
	s.field, s.lang = field, lang
	if !field.Valid() {
		return entities.ExtractionResult{}, apperrors.NewValidationError("unknown field")
	}
	return entities.ExtractionResult{Field: field, Value: "9876543210"}, nil
}

type stubRegistrar struct {
	got *entities.IntakeRequest
	err error
}

func (s *stubRegistrar) Register(ctx context.Context, req *entities.IntakeRequest) (*entities.RegistrationResult, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &entities.RegistrationResult{
		Department:         "Cardiology",
		Floor:              2,
		FloorWord:          "Second Floor",
		Priority:           entities.PriorityHigh,
		RegistrationNumber: "VBT-20240309-ABC",
		Emergency:          true,
		TokenNumber:        4,
	}, nil
}

type stubLister struct {
	patients []*entities.Patient
	err      error
}

func (s *stubLister) Recent(ctx context.Context) ([]*entities.Patient, error) {
	return s.patients, s.err
}

func newIntakeHandler() (*handlers.IntakeHandler, *stubExtractor, *stubRegistrar, *stubLister) {
	extractor := &stubExtractor{}
	registrar := &stubRegistrar{}
	lister := &stubLister{patients: []*entities.Patient{}}
	return handlers.NewIntakeHandler(&stubDetector{lang: entities.LanguageHindi}, extractor, registrar, lister), extractor, registrar, lister
}

func TestIntakeHandler_Health(t *testing.T) {
	handler, _, _, _ := newIntakeHandler()
	w := httptest.NewRecorder()

	handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"VoiceByte OK"}`, w.Body.String())
}

func TestIntakeHandler_DetectLanguage(t *testing.T) {
	handler, _, _, _ := newIntakeHandler()

	t.Run("returns language and questions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/detect-language", strings.NewReader(`{"transcript":"mera naam ravi hai"}`))
		w := httptest.NewRecorder()

		handler.DetectLanguage(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Hindi", resp["language"])
		assert.Contains(t, resp, "questions")
		assert.NotContains(t, resp, "FallbackUsed")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.DetectLanguage(w, httptest.NewRequest(http.MethodPost, "/detect-language", strings.NewReader(`{`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIntakeHandler_Extract(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  entities.Field
		wantLang   entities.Language
	}{
		{
			name:       "known field",
			body:       `{"field":"mobile","transcript":"nine eight seven","lang":"Telugu"}`,
			wantStatus: http.StatusOK,
			wantField:  entities.FieldMobile,
			wantLang:   entities.LanguageTelugu,
		},
		{
			name:       "field is case-insensitive and language defaults",
			body:       `{"field":" Mobile ","transcript":"nine","lang":"Klingon"}`,
			wantStatus: http.StatusOK,
			wantField:  entities.FieldMobile,
			wantLang:   entities.LanguageEnglish,
		},
		{
			name:       "unknown field",
			body:       `{"field":"blood_group","transcript":"o positive"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  entities.Field("blood_group"),
			wantLang:   entities.LanguageEnglish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, extractor, _, _ := newIntakeHandler()
			w := httptest.NewRecorder()

			handler.Extract(w, httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantField, extractor.field)
			assert.Equal(t, tt.wantLang, extractor.lang)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"extracted":"9876543210"}`, w.Body.String())
			}
		})
	}
}

func TestIntakeHandler_Process(t *testing.T) {
	t.Run("registers the patient", func(t *testing.T) {
		handler, _, registrar, _ := newIntakeHandler()
		body := `{"name":"Ravi","age":"45","mobile":"9876543210","symptoms":"chest pain","days":"2 days","emergency":false,"language":"Telugu"}`
		w := httptest.NewRecorder()

		handler.Process(w, httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, registrar.got)
		assert.Equal(t, "chest pain", registrar.got.Symptoms)
		assert.Equal(t, entities.LanguageTelugu, registrar.got.Language)

		var resp entities.RegistrationResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Cardiology", resp.Department)
		assert.Equal(t, 4, resp.TokenNumber)
		assert.True(t, resp.Emergency)
	})

	t.Run("hides internal errors", func(t *testing.T) {
		handler, _, registrar, _ := newIntakeHandler()
		registrar.err = apperrors.NewInternalError("failed to save patient", assert.AnError)
		w := httptest.NewRecorder()

		handler.Process(w, httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"name":"Ravi"}`)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestIntakeHandler_ListPatients(t *testing.T) {
	t.Run("empty list is an array", func(t *testing.T) {
		handler, _, _, _ := newIntakeHandler()
		w := httptest.NewRecorder()

		handler.ListPatients(w, httptest.NewRequest(http.MethodGet, "/patients", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		handler, _, _, lister := newIntakeHandler()
		lister.err = apperrors.NewInternalError("failed to list patients", assert.AnError)
		w := httptest.NewRecorder()

		handler.ListPatients(w, httptest.NewRequest(http.MethodGet, "/patients", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
