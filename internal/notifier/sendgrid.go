package notifier

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridNotifier emails each event to the operations inbox. Customer-facing
// delivery (templated email, SMS, WhatsApp) lives in a separate system that
// consumes the same events.
type SendgridNotifier struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	opsEmail  string
}

func NewSendgridNotifier(apiKey, fromName, fromEmail, opsEmail string) *SendgridNotifier {
	return &SendgridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		opsEmail:  opsEmail,
	}
}

func (n *SendgridNotifier) Notify(ctx context.Context, event string, payload map[string]any) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail("Operations", n.opsEmail)
	subject := fmt.Sprintf("[rental] %s", event)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Event: %s\n\n", event))
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s: %v\n", k, payload[k]))
	}

	message := mail.NewSingleEmail(from, subject, to, b.String(), "")
	resp, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed with status %d", resp.StatusCode)
	}
	return nil
}
