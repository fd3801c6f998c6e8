package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/models"
)

// OwnerNotifier tells the site owner about new contact messages over the
// configured channels. Delivery is best-effort: failures are logged, never
// surfaced to the submitter, and never fail the request that stored the
// message.
type OwnerNotifier struct {
	logger zerolog.Logger

	resendAPIKey string
	emailFrom    string
	emailTo      string

	twilioSID    string
	twilioToken  string
	whatsappFrom string
	whatsappTo   string
}

func NewOwnerNotifier(cfg map[string]string) *OwnerNotifier {
	return &OwnerNotifier{
		logger:       log.With().Str("service", "ownerNotifier").Logger(),
		resendAPIKey: config.GetString(cfg, "RESEND_API_KEY", ""),
		emailFrom:    config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		emailTo:      config.GetString(cfg, "OWNER_EMAIL", ""),
		twilioSID:    config.GetString(cfg, "TWILIO_ACCOUNT_SID", ""),
		twilioToken:  config.GetString(cfg, "TWILIO_AUTH_TOKEN", ""),
		whatsappFrom: config.GetString(cfg, "TWILIO_WHATSAPP_FROM", ""),
		whatsappTo:   config.GetString(cfg, "OWNER_WHATSAPP", ""),
	}
}

// ContactReceived fans the message out to every configured channel. It
// returns immediately; delivery happens in the background.
func (n *OwnerNotifier) ContactReceived(ctx context.Context, m *models.ContactMessage) {
	body := fmt.Sprintf("New contact message from %s <%s>\n\nSubject: %s\n\n%s",
		m.Name, m.Email, m.Subject, m.Message)

	if n.resendAPIKey != "" && n.emailTo != "" {
		go func() {
			subject := fmt.Sprintf("Portfolio contact: %s", m.Subject)
			if err := SendEmail(n.resendAPIKey, n.emailFrom, subject, body, []string{n.emailTo}); err != nil {
				n.logger.Error().Err(err).Str("messageId", m.ID.String()).Msg("Failed to send contact notification email")
			}
		}()
	}

	if n.twilioSID != "" && n.whatsappTo != "" {
		go func() {
			if err := SendWhatsApp(n.twilioSID, n.twilioToken, n.whatsappFrom, n.whatsappTo, body); err != nil {
				n.logger.Error().Err(err).Str("messageId", m.ID.String()).Msg("Failed to send contact notification over WhatsApp")
			}
		}()
	}
}
