package printing

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/utils"
	"io"
)

// Printer sends a slip to an output device. The returned location tells the
// caller where the slip ended up, if anywhere addressable.
type Printer interface {
	Print(ctx context.Context, ownerID string, slip Slip) (location string, err error)
}

// WriterPrinter prints to a terminal or file.
type WriterPrinter struct {
	Out io.Writer
}

func NewWriterPrinter(out io.Writer) *WriterPrinter {
	return &WriterPrinter{Out: out}
}

func (p *WriterPrinter) Print(ctx context.Context, ownerID string, slip Slip) (string, error) {
	_, err := io.WriteString(p.Out, slip.String())
	metrics.ObserveSlipPrinted("writer", err)
	return "", err
}

// ArchivePrinter stores the slip text in the object store bucket.
type ArchivePrinter struct {
	Storage    contracts.Storage
	BucketName string
}

func NewArchivePrinter(storage contracts.Storage, bucketName string) *ArchivePrinter {
	return &ArchivePrinter{
		Storage:    storage,
		BucketName: bucketName,
	}
}

func (p *ArchivePrinter) Print(ctx context.Context, ownerID string, slip Slip) (string, error) {
	objectName := utils.GenerateSlipObjectName(ownerID, slip.RecordID)
	location, err := p.Storage.PutObject(ctx, p.BucketName, objectName, []byte(slip.String()), constvars.MIMETextPlainCharsetUTF8)
	metrics.ObserveSlipPrinted("archive", err)
	return location, err
}
