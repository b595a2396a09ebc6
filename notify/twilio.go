package notify

import (
	"fmt"

	"github.com/eppranavaudupa/smartBliendStick/config"
	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends alert messages as SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	to     string
}

// NewTwilioSender builds a TwilioSender from the configured credentials.
// Returns nil when any credential is missing, which disables dispatch.
func NewTwilioSender(cfg *config.Config) *TwilioSender {
	if !cfg.NotificationConfigured() {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioSID,
		Password: cfg.TwilioToken,
	})

	return &TwilioSender{
		client: client,
		from:   cfg.TwilioFrom,
		to:     cfg.AlertTo,
	}
}

func (s *TwilioSender) Type() string { return "sms" }

// Send delivers the message body to the configured recipient and returns the
// Twilio message SID.
func (s *TwilioSender) Send(body string) (string, error) {
	params := &api.CreateMessageParams{}
	params.SetBody(body)
	params.SetFrom(s.from)
	params.SetTo(s.to)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
