package notify

import (
	"context"
	"fmt"
	"time"

	"co2watch/internal/logger"

	"github.com/go-resty/resty/v2"
)

const defaultSendTimeout = 20 * time.Second

// WhatsAppClient sends messages through a CallMeBot-style WhatsApp gateway:
// a GET request carrying phone, text and api key as query parameters.
type WhatsAppClient struct {
	http   *resty.Client
	url    string
	apiKey string
	log    *logger.Logger
}

var _ Notifier = (*WhatsAppClient)(nil)

func NewWhatsAppClient(gatewayURL, apiKey string, timeout time.Duration, log *logger.Logger) *WhatsAppClient {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &WhatsAppClient{
		http:   resty.New().SetTimeout(timeout),
		url:    gatewayURL,
		apiKey: apiKey,
		log:    log,
	}
}

// Deliver sends the message and treats any non-2xx gateway answer as a
// delivery failure.
func (c *WhatsAppClient) Deliver(ctx context.Context, phone, message string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"phone":  phone,
			"text":   message,
			"apikey": c.apiKey,
		}).
		Get(c.url)
	if err != nil {
		return fmt.Errorf("deliver whatsapp message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("deliver whatsapp message: gateway status %d", resp.StatusCode())
	}
	if c.log != nil {
		c.log.Infow("whatsapp_message_sent", "phone", phone)
	}
	return nil
}
