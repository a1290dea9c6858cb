package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/report"
	"github.com/huangsam/readiness/schema"
)

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJS sends reports through the EmailJS REST API.
type EmailJS struct {
	cfg    contract.EmailJSConfig
	client *http.Client
}

var _ contract.Deliverer = &EmailJS{}

// NewEmailJS creates an EmailJS client. The timeout bounds each send.
func NewEmailJS(cfg contract.EmailJSConfig, timeout time.Duration) *EmailJS {
	return &EmailJS{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// emailJSRequest is the body of a send call.
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// TemplateParams returns the variables the email template expects.
func TemplateParams(payload schema.ReportPayload, recipient schema.Respondent) map[string]string {
	return map[string]string{
		"company_name":    recipient.Company,
		"assessment_date": payload.GeneratedAt.Format(report.AssessmentDate),
		"report_html":     payload.HTML,
		"to_email":        recipient.Email,
		"to_name":         recipient.Name,
		"pdf_content":     base64.StdEncoding.EncodeToString(payload.PDF),
	}
}

// Deliver makes a single send attempt. Non-2xx answers become a *DeliveryError.
func (e *EmailJS) Deliver(ctx context.Context, payload schema.ReportPayload, recipient schema.Respondent) (schema.DeliveryAck, error) {
	if _, err := mail.ParseAddress(recipient.Email); err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("%w: %q is not an email address", ErrInvalidRecipient, recipient.Email)
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: TemplateParams(payload, recipient),
	})
	if err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(req)
	if err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	text, err := io.ReadAll(io.LimitReader(res.Body, 64*1024))
	if err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return schema.DeliveryAck{}, &DeliveryError{
			Transport:  schema.EmailJSTransport,
			StatusCode: res.StatusCode,
			Body:       string(bytes.TrimSpace(text)),
		}
	}
	return schema.DeliveryAck{Transport: schema.EmailJSTransport, Reference: string(bytes.TrimSpace(text))}, nil
}
