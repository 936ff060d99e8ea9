package entities

import "time"

// QueueEventType represents the queue change that occurred
type QueueEventType string

const (
	QueueEventRegistered QueueEventType = "patient_registered"
	QueueEventCalled     QueueEventType = "patient_called"
	QueueEventSeen       QueueEventType = "patient_seen"
)

// QueueEvent is broadcast to admin dashboards when the queue changes
type QueueEvent struct {
	ID          string         `json:"id"`
	Type        QueueEventType `json:"type"`
	PatientID   int64          `json:"patient_id"`
	TokenNumber int            `json:"token_number"`
	Department  string         `json:"department"`
	Emergency   bool           `json:"emergency"`
	Timestamp   time.Time      `json:"timestamp"`
}
