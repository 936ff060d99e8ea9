package entities

import "time"

// PatientStatus is a patient's position in the daily queue
type PatientStatus string

const (
	PatientStatusWaiting PatientStatus = "waiting"
	PatientStatusCalled  PatientStatus = "called"
	PatientStatusSeen    PatientStatus = "seen"
)

// Patient is a registered visit
type Patient struct {
	ID                 int64         `json:"id" db:"id"`
	RegistrationNumber string        `json:"registration_number" db:"registration_number"`
	Name               string        `json:"name" db:"name"`
	Age                string        `json:"age" db:"age"`
	Mobile             string        `json:"mobile" db:"mobile"`
	Symptoms           string        `json:"symptoms_keywords" db:"symptoms_keywords"`
	Days               string        `json:"days_suffering" db:"days_suffering"`
	Department         string        `json:"department" db:"department"`
	FloorNumber        int           `json:"floor_number" db:"floor_number"`
	FloorWord          string        `json:"floor_word" db:"floor_word"`
	Emergency          bool          `json:"emergency" db:"emergency"`
	Priority           Priority      `json:"priority" db:"priority"`
	Doctor             string        `json:"doctor" db:"doctor"`
	Language           Language      `json:"language" db:"language"`
	VisitTime          time.Time     `json:"visit_time" db:"visit_time"`
	TokenNumber        int           `json:"token_number" db:"token_number"`
	Status             PatientStatus `json:"status" db:"status"`
}

// IntakeRequest carries the fields collected by the voice flow
type IntakeRequest struct {
	Name      string   `json:"name"`
	Age       string   `json:"age"`
	Mobile    string   `json:"mobile"`
	Symptoms  string   `json:"symptoms"`
	Days      string   `json:"days"`
	Emergency bool     `json:"emergency"`
	Language  Language `json:"language"`
}

// RegistrationResult is returned to the kiosk once a patient is queued
type RegistrationResult struct {
	Department         string            `json:"department"`
	Floor              int               `json:"floor"`
	FloorWord          string            `json:"floorWord"`
	Doctor             string            `json:"doctor"`
	Keywords           []string          `json:"keywords"`
	Days               string            `json:"days"`
	Priority           Priority          `json:"priority"`
	RegistrationNumber string            `json:"registration_number"`
	Emergency          bool              `json:"emergency"`
	TokenNumber        int               `json:"token_number"`
	AllDepartments     []DepartmentEntry `json:"all_departments"`
}

// QueueStats summarises one day's queue
type QueueStats struct {
	Total         int    `json:"total"`
	Emergencies   int    `json:"emergencies"`
	Seen          int    `json:"seen"`
	Called        int    `json:"called"`
	Waiting       int    `json:"waiting"`
	TopDepartment string `json:"top_dept"`
}
