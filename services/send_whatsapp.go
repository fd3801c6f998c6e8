package services

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SendWhatsApp delivers a WhatsApp message through Twilio. The from and to
// numbers are plain E.164 strings; the whatsapp: channel prefix is added here.
func SendWhatsApp(accountSID, authToken, from, to, body string) error {
	if accountSID == "" || authToken == "" {
		return fmt.Errorf("twilio credentials are required")
	}
	if from == "" || to == "" {
		return fmt.Errorf("both sender and recipient numbers are required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(withWhatsAppPrefix(from))
	params.SetTo(withWhatsAppPrefix(to))
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	return nil
}

func withWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
