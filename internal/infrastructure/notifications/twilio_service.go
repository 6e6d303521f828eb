package notifications

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/CamiloBytes/reportesvc/domain"
)

// TwilioService implements domain.NotificationService. It carries the SMS
// sent to a report's contact phone when the report is resolved.
type TwilioService struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioService creates a new Twilio notification service.
func NewTwilioService(accountSID, authToken, fromNumber string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendSMS implements domain.NotificationService. When no sender number is
// configured the message is logged instead of sent, so local setups work
// without credentials.
func (t *TwilioService) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		log.Printf("SMS_MOCK: to=%s message=%q", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

var _ domain.NotificationService = (*TwilioService)(nil)
