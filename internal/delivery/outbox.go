package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/report"
	"github.com/huangsam/readiness/schema"
)

// Outbox delivers reports into a local directory, for offline use and CI artifacts.
type Outbox struct {
	dir string
}

var _ contract.Deliverer = &Outbox{}

// NewOutbox creates an outbox rooted at dir.
func NewOutbox(dir string) *Outbox {
	return &Outbox{dir: dir}
}

// envelope records who a report was meant for.
type envelope struct {
	To          schema.Respondent `json:"to"`
	GeneratedAt string            `json:"generated_at"`
	HTMLFile    string            `json:"html_file"`
	PDFFile     string            `json:"pdf_file"`
	PDFBytes    int               `json:"pdf_bytes"`
}

// Deliver writes the HTML, PDF and a JSON envelope. The envelope path is the reference.
func (o *Outbox) Deliver(ctx context.Context, payload schema.ReportPayload, recipient schema.Respondent) (schema.DeliveryAck, error) {
	if err := ctx.Err(); err != nil {
		return schema.DeliveryAck{}, err
	}
	htmlPath, pdfPath, err := report.SaveFiles(o.dir, payload, recipient.Company)
	if err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("outbox: %w", err)
	}

	data, err := json.MarshalIndent(envelope{
		To:          recipient,
		GeneratedAt: payload.GeneratedAt.Format(contract.DateTimeFormat),
		HTMLFile:    filepath.Base(htmlPath),
		PDFFile:     filepath.Base(pdfPath),
		PDFBytes:    len(payload.PDF),
	}, "", "  ")
	if err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("outbox: marshal envelope: %w", err)
	}

	envelopePath := filepath.Join(o.dir, report.BaseName(recipient.Company, payload.GeneratedAt)+".json")
	if err := os.WriteFile(envelopePath, data, 0o644); err != nil {
		return schema.DeliveryAck{}, fmt.Errorf("outbox: write envelope: %w", err)
	}
	return schema.DeliveryAck{Transport: schema.OutboxTransport, Reference: envelopePath}, nil
}
