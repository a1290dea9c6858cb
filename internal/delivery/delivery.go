// Package delivery hands rendered reports to an email service or a local outbox.
package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// User-facing delivery messages.
const (
	SuccessMessage = "Assessment report sent successfully!"
	failurePrefix  = "Failed to send report: "
)

// Delivery errors.
var (
	ErrDeliveryDisabled = errors.New("report delivery is disabled")
	ErrRateLimited      = errors.New("too many reports sent, try again later")
	ErrInvalidRecipient = errors.New("invalid recipient")
)

// DeliveryError is a rejection reported by the remote service.
type DeliveryError struct {
	Transport  schema.DeliveryTransport
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s rejected the report (status %d): %s", e.Transport, e.StatusCode, e.Body)
}

// New builds the deliverer selected in the config.
func New(cfg contract.DeliveryConfig) (contract.Deliverer, error) {
	switch cfg.Transport {
	case schema.EmailJSTransport:
		return NewEmailJS(cfg.EmailJS, cfg.Timeout), nil
	case schema.OutboxTransport:
		return NewOutbox(cfg.OutboxDir), nil
	case schema.NoneTransport, "":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown delivery transport '%s'", cfg.Transport)
	}
}

// Send delivers a payload and turns the outcome into a user-facing result.
// Failures never affect the assessment; the caller may retry with the same payload.
func Send(ctx context.Context, d contract.Deliverer, payload schema.ReportPayload, recipient schema.Respondent) schema.DeliveryResult {
	ack, err := d.Deliver(ctx, payload, recipient)
	return Outcome(ack, err)
}

// Outcome logs a delivery attempt and describes it for the user.
func Outcome(ack schema.DeliveryAck, err error) schema.DeliveryResult {
	if err != nil {
		contract.Log.WithError(err).Warn("report delivery failed")
		return schema.DeliveryResult{Success: false, Message: failurePrefix + failureText(err)}
	}
	contract.Log.WithFields(logrus.Fields{
		"transport": ack.Transport,
		"reference": ack.Reference,
	}).Info("report delivered")
	return schema.DeliveryResult{Success: true, Message: SuccessMessage}
}

// failureText prefers the service's own explanation over the wrapped error chain.
func failureText(err error) string {
	var de *DeliveryError
	if errors.As(err, &de) && de.Body != "" {
		return de.Body
	}
	return err.Error()
}

// Limited throttles a deliverer so bursts of requests cannot flood the email service.
type Limited struct {
	next    contract.Deliverer
	limiter *rate.Limiter
}

var _ contract.Deliverer = &Limited{}

// NewLimited allows perMinute deliveries per minute with a burst of the same size.
func NewLimited(next contract.Deliverer, perMinute int) *Limited {
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
	}
}

// Deliver forwards to the wrapped deliverer when a token is available.
func (l *Limited) Deliver(ctx context.Context, payload schema.ReportPayload, recipient schema.Respondent) (schema.DeliveryAck, error) {
	if !l.limiter.Allow() {
		return schema.DeliveryAck{}, ErrRateLimited
	}
	return l.next.Deliver(ctx, payload, recipient)
}

// None rejects every delivery.
type None struct{}

var _ contract.Deliverer = None{}

// Deliver always fails with ErrDeliveryDisabled.
func (None) Deliver(context.Context, schema.ReportPayload, schema.Respondent) (schema.DeliveryAck, error) {
	return schema.DeliveryAck{}, fmt.Errorf("%w: set delivery-transport to emailjs or outbox", ErrDeliveryDisabled)
}
