package delivery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	recipient = schema.Respondent{Name: "Jordan Lee", Email: "jordan@example.com", Company: "Acme Corp", Role: "CISO"}
	payload   = schema.ReportPayload{
		HTML:        "<h2>SOC 2 Readiness Assessment Report</h2>",
		PDF:         []byte("%PDF-1.3 fake"),
		GeneratedAt: time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC),
	}
)

type stubDeliverer struct {
	ack   schema.DeliveryAck
	err   error
	calls int
}

func (s *stubDeliverer) Deliver(context.Context, schema.ReportPayload, schema.Respondent) (schema.DeliveryAck, error) {
	s.calls++
	return s.ack, s.err
}

func newEmailJS(endpoint string) *EmailJS {
	return NewEmailJS(contract.EmailJSConfig{
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "public_z",
		PrivateKey: "private_k",
		Endpoint:   endpoint,
	}, 5*time.Second)
}

func TestEmailJS_Deliver(t *testing.T) {
	var got emailJSRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, emailJSSendPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	ack, err := newEmailJS(server.URL).Deliver(context.Background(), payload, recipient)
	require.NoError(t, err)

	assert.Equal(t, schema.EmailJSTransport, ack.Transport)
	assert.Equal(t, "OK", ack.Reference)
	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "public_z", got.UserID)
	assert.Equal(t, "private_k", got.AccessToken)
	assert.Equal(t, "Acme Corp", got.TemplateParams["company_name"])
	assert.Equal(t, "March 4, 2026", got.TemplateParams["assessment_date"])
	assert.Equal(t, payload.HTML, got.TemplateParams["report_html"])
	assert.Equal(t, "jordan@example.com", got.TemplateParams["to_email"])
	assert.Equal(t, "Jordan Lee", got.TemplateParams["to_name"])

	pdf, err := base64.StdEncoding.DecodeString(got.TemplateParams["pdf_content"])
	require.NoError(t, err)
	assert.Equal(t, payload.PDF, pdf)
}

func TestEmailJS_Rejected(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The Public Key is invalid\n"))
	}))
	defer server.Close()

	_, err := newEmailJS(server.URL).Deliver(context.Background(), payload, recipient)

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusBadRequest, de.StatusCode)
	assert.Equal(t, "The Public Key is invalid", de.Body)
	assert.Equal(t, 1, calls, "no retry")
}

func TestEmailJS_InvalidRecipient(t *testing.T) {
	r := recipient
	r.Email = "not an address"

	_, err := newEmailJS("http://127.0.0.1:0").Deliver(context.Background(), payload, r)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestEmailJS_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The request context is only canceled once the body has been read.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newEmailJS(server.URL).Deliver(ctx, payload, recipient)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestOutbox_Deliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outbox")

	ack, err := NewOutbox(dir).Deliver(context.Background(), payload, recipient)
	require.NoError(t, err)

	assert.Equal(t, schema.OutboxTransport, ack.Transport)
	assert.Equal(t, filepath.Join(dir, "soc2-readiness-acme-corp-20260304-090000.json"), ack.Reference)

	data, err := os.ReadFile(ack.Reference)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, recipient, env.To)
	assert.Equal(t, "soc2-readiness-acme-corp-20260304-090000.pdf", env.PDFFile)
	assert.Equal(t, len(payload.PDF), env.PDFBytes)

	pdf, err := os.ReadFile(filepath.Join(dir, env.PDFFile))
	require.NoError(t, err)
	assert.Equal(t, payload.PDF, pdf)
}

func TestNone_Deliver(t *testing.T) {
	_, err := None{}.Deliver(context.Background(), payload, recipient)
	assert.ErrorIs(t, err, ErrDeliveryDisabled)
}

func TestNew(t *testing.T) {
	tests := []struct {
		transport schema.DeliveryTransport
		expected  any
		wantErr   bool
	}{
		{schema.EmailJSTransport, &EmailJS{}, false},
		{schema.OutboxTransport, &Outbox{}, false},
		{schema.NoneTransport, None{}, false},
		{"pigeon", nil, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.transport), func(t *testing.T) {
			d, err := New(contract.DeliveryConfig{Transport: tt.transport, OutboxDir: t.TempDir()})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expected, d)
		})
	}
}

func TestSend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubDeliverer{ack: schema.DeliveryAck{Transport: schema.OutboxTransport}}
		result := Send(context.Background(), stub, payload, recipient)
		assert.Equal(t, schema.DeliveryResult{Success: true, Message: SuccessMessage}, result)
	})

	t.Run("service rejection uses body", func(t *testing.T) {
		stub := &stubDeliverer{err: &DeliveryError{Transport: schema.EmailJSTransport, StatusCode: 412, Body: "Template not found"}}
		result := Send(context.Background(), stub, payload, recipient)
		assert.False(t, result.Success)
		assert.Equal(t, "Failed to send report: Template not found", result.Message)
	})

	t.Run("other errors use message", func(t *testing.T) {
		stub := &stubDeliverer{err: errors.New("dial tcp: connection refused")}
		result := Send(context.Background(), stub, payload, recipient)
		assert.Equal(t, "Failed to send report: dial tcp: connection refused", result.Message)
	})

	t.Run("retry after failure", func(t *testing.T) {
		stub := &stubDeliverer{err: errors.New("timeout")}
		assert.False(t, Send(context.Background(), stub, payload, recipient).Success)
		stub.err = nil
		assert.True(t, Send(context.Background(), stub, payload, recipient).Success)
		assert.Equal(t, 2, stub.calls)
	})
}

func TestLimited(t *testing.T) {
	stub := &stubDeliverer{}
	limited := NewLimited(stub, 2)

	for range 2 {
		_, err := limited.Deliver(context.Background(), payload, recipient)
		require.NoError(t, err)
	}
	_, err := limited.Deliver(context.Background(), payload, recipient)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 2, stub.calls)
}
