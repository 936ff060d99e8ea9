package entities

// NotificationType represents the notification purpose
type NotificationType string

const (
	NotificationRegistration NotificationType = "registration"
	NotificationCalled       NotificationType = "called"
)

// Notification is an SMS about a patient's token
type Notification struct {
	Type       NotificationType `json:"type"`
	Mobile     string           `json:"mobile"`
	Token      int              `json:"token"`
	Department string           `json:"department"`
	Floor      int              `json:"floor"`
	Language   Language         `json:"language"`
}
