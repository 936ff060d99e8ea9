package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// LanguageDetector identifies a transcript's language.
type LanguageDetector interface {
	Detect(ctx context.Context, transcript string) entities.LanguageDetection
}

// FieldExtractor pulls one intake field out of a transcript.
type FieldExtractor interface {
	Extract(ctx context.Context, field entities.Field, transcript string, lang entities.Language) (entities.ExtractionResult, error)
}

// Registrar turns a completed intake into a queued patient.
type Registrar interface {
	Register(ctx context.Context, req *entities.IntakeRequest) (*entities.RegistrationResult, error)
}

// PatientLister lists recent registrations.
type PatientLister interface {
	Recent(ctx context.Context) ([]*entities.Patient, error)
}

// IntakeHandler serves the kiosk's voice intake flow
type IntakeHandler struct {
	languages LanguageDetector
	extractor FieldExtractor
	registrar Registrar
	patients  PatientLister
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(languages LanguageDetector, extractor FieldExtractor, registrar Registrar, patients PatientLister) *IntakeHandler {
	return &IntakeHandler{
		languages: languages,
		extractor: extractor,
		registrar: registrar,
		patients:  patients,
	}
}

type detectLanguageRequest struct {
	Transcript string `json:"transcript"`
}

type extractRequest struct {
	Field      string `json:"field"`
	Transcript string `json:"transcript"`
	Lang       string `json:"lang"`
}

// Health handles GET /health
func (h *IntakeHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "VoiceByte OK"})
}

// DetectLanguage handles POST /detect-language
func (h *IntakeHandler) DetectLanguage(w http.ResponseWriter, r *http.Request) {
	var req detectLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	respondWithJSON(w, http.StatusOK, h.languages.Detect(r.Context(), req.Transcript))
}

// Extract handles POST /extract
func (h *IntakeHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	field := entities.Field(strings.ToLower(strings.TrimSpace(req.Field)))
	result, err := h.extractor.Extract(r.Context(), field, req.Transcript, entities.LanguageOrDefault(req.Lang))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"extracted": result.Value})
}

// Process handles POST /process
func (h *IntakeHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req entities.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.registrar.Register(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListPatients handles GET /patients
func (h *IntakeHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patients.Recent(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patients)
}
