package services

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/pkg/numerals"
)

var smsTemplates = map[entities.NotificationType]map[entities.Language]*template.Template{
	entities.NotificationRegistration: {
		entities.LanguageEnglish:   smsTemplate("VoiceByte: Token {{.Token}}. Dept: {{.Department}}. Floor {{.Floor}}. Wait for your token to be called."),
		entities.LanguageTelugu:    smsTemplate("VoiceByte: Token {{.Token}}. Dept: {{.Department}}. Floor {{.Floor}}. Meeru token pilavabadevvaraku vechi undandi."),
		entities.LanguageHindi:     smsTemplate("VoiceByte: Token {{.Token}}. Dept: {{.Department}}. Manzil {{.Floor}}. Token bulane tak pratiksha karein."),
		entities.LanguageTamil:     smsTemplate("VoiceByte: Token {{.Token}}. Dept: {{.Department}}. Thalam {{.Floor}}. Ungal token azhaikkappatum varai kaattirunga."),
		entities.LanguageMalayalam: smsTemplate("VoiceByte: Token {{.Token}}. Dept: {{.Department}}. Nila {{.Floor}}. Token vilikkumvare kaattirikku."),
	},
	entities.NotificationCalled: {
		entities.LanguageEnglish:   smsTemplate("VoiceByte: Token {{.Token}} called! Please come to {{.Department}}, Floor {{.Floor}}."),
		entities.LanguageTelugu:    smsTemplate("VoiceByte: Token {{.Token}} pilavabadindi! {{.Department}} ki randi. Antastu {{.Floor}}."),
		entities.LanguageHindi:     smsTemplate("VoiceByte: Token {{.Token}} bulaya! {{.Department}} mein aayen. Manzil {{.Floor}}."),
		entities.LanguageTamil:     smsTemplate("VoiceByte: Token {{.Token}} azhaikkappattadu! {{.Department}} varuga. Thalam {{.Floor}}."),
		entities.LanguageMalayalam: smsTemplate("VoiceByte: Token {{.Token}} viliccu! {{.Department}} il varika. Nila {{.Floor}}."),
	},
}

func smsTemplate(text string) *template.Template {
	return template.Must(template.New("sms").Parse(text))
}

// NotificationService sends token SMS messages to patients
type NotificationService struct {
	sender providers.SMSSender
}

// NewNotificationService creates a new notification service. A nil sender
// disables delivery.
func NewNotificationService(sender providers.SMSSender) *NotificationService {
	return &NotificationService{sender: sender}
}

// Configured reports whether messages can be delivered at all.
func (n *NotificationService) Configured() bool {
	return n.sender != nil && n.sender.IsConfigured()
}

// Notify renders and sends n. It reports whether the message was handed to
// the gateway; failures are logged, never returned.
func (n *NotificationService) Notify(ctx context.Context, msg entities.Notification) bool {
	digits := numerals.Digits(msg.Mobile)
	if !n.Configured() || len(digits) < entities.MobileDigits {
		log.Info().
			Bool("configured", n.Configured()).
			Str("type", string(msg.Type)).
			Int("token", msg.Token).
			Msg("sms skipped")
		return false
	}

	body, err := RenderNotification(msg)
	if err != nil {
		log.Error().Err(err).Str("type", string(msg.Type)).Msg("failed to render sms")
		return false
	}

	if err := n.sender.Send(ctx, digits[len(digits)-entities.MobileDigits:], body); err != nil {
		log.Error().Err(err).Str("type", string(msg.Type)).Int("token", msg.Token).Msg("failed to send sms")
		return false
	}

	log.Info().Str("type", string(msg.Type)).Int("token", msg.Token).Msg("sms sent")
	return true
}

// RenderNotification formats msg in its language, falling back to English.
func RenderNotification(msg entities.Notification) (string, error) {
	byLang, ok := smsTemplates[msg.Type]
	if !ok {
		return "", fmt.Errorf("unknown notification type %q", msg.Type)
	}
	tmpl, ok := byLang[msg.Language]
	if !ok {
		tmpl = byLang[entities.LanguageEnglish]
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("failed to render %s sms: %w", msg.Type, err)
	}
	return buf.String(), nil
}
