package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSConfig holds Twilio credentials
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Enabled reports whether enough is configured to send SMS
func (c SMSConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier sends pickup notifications by text message through Twilio
type SMSNotifier struct {
	api  messageCreator
	from string
}

// NewSMSNotifier creates a Twilio-backed notifier
func NewSMSNotifier(cfg SMSConfig) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMSNotifier{api: client.Api, from: cfg.FromNumber}
}

func (s *SMSNotifier) NotifyOrderReady(ctx context.Context, n OrderReady) error {
	if n.Phone == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.Phone)
	params.SetFrom(s.from)
	params.SetBody(smsBody(n))

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("notify: sending sms to %s: %w", n.Phone, err)
	}
	return nil
}

func smsBody(n OrderReady) string {
	body := fmt.Sprintf("Hi %s, your %s order is ready for pickup at %s.", n.CustomerName, n.ServiceType, n.StoreName)
	if n.Total != "" {
		body += " Amount: " + n.Total + "."
	}
	if n.StorePhone != "" {
		body += " Call " + n.StorePhone + " for queries."
	}
	return body
}
