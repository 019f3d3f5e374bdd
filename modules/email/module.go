// Package email sends the upstream "body" port as a plain-text message.
// Without an smtpAddr configured the handler runs dry: it logs the message
// instead of sending, which keeps workflows testable without a mail relay.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeEmail, OnRunEmail)
}

// OnRunEmail is the handler for email nodes.
func OnRunEmail(ctx context.Context, req registry.Request) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx).With("handler", "email", "nodeID", req.Node.ID)

	to := req.Node.Config["to"]
	subject := req.Node.Config["subject"]
	body, _ := req.Inputs["body"].(string)

	if req.Node.Config["smtpAddr"] == "" {
		logger.Info("📧 Dry-run email (no smtpAddr configured).", "to", to, "subject", subject)
		return map[string]any{"sent": false}, nil
	}

	recipients := strings.Split(to, ",")
	for i := range recipients {
		recipients[i] = strings.TrimSpace(recipients[i])
	}

	msg := fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body)
	sender := req.Node.Config["from"]
	if sender == "" {
		sender = "flowgrid@localhost"
	}

	if err := smtp.SendMail(req.Node.Config["smtpAddr"], nil, sender, recipients, []byte(msg)); err != nil {
		return nil, fmt.Errorf("sending mail to %s: %w", to, err)
	}

	logger.Info("📧 Email sent.", "to", to, "subject", subject)
	return map[string]any{"sent": true}, nil
}
