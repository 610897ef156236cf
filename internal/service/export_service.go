package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splittab/internal/config"
	"splittab/internal/csvexport"
	"splittab/internal/domain"
	"splittab/internal/engine"
	"splittab/internal/port"
	"splittab/internal/xlsxexport"
)

// Export is a rendered settlement export ready for download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchivedExport points at an export stored in the archive bucket.
type ArchivedExport struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// ExportService renders settlement summaries as CSV and XLSX, and archives
// them to object storage for link sharing.
type ExportService interface {
	CSV(ctx context.Context, billID uuid.UUID) (*Export, error)
	XLSX(ctx context.Context, billID uuid.UUID) (*Export, error)
	Archive(ctx context.Context, billID uuid.UUID, format string) (*ArchivedExport, error)
}

type exportService struct {
	snapshotRepo port.SnapshotRepository
	storage      port.ObjectStorage
	cfg          config.ExportConfig
}

// NewExportService creates a new ExportService implementation.
func NewExportService(snapshotRepo port.SnapshotRepository, storage port.ObjectStorage, cfg config.ExportConfig) ExportService {
	return &exportService{snapshotRepo: snapshotRepo, storage: storage, cfg: cfg}
}

func (s *exportService) CSV(ctx context.Context, billID uuid.UUID) (*Export, error) {
	snap, summary, err := s.summarize(ctx, billID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteSummary(summary); err != nil {
		return nil, fmt.Errorf("export.CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export.CSV flush: %w", err)
	}

	return &Export{
		Filename:    csvexport.BuildFilename(snap.Bill.Title, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) XLSX(ctx context.Context, billID uuid.UUID) (*Export, error) {
	snap, summary, err := s.summarize(ctx, billID)
	if err != nil {
		return nil, err
	}

	buf, err := xlsxexport.BuildWorkbook(summary)
	if err != nil {
		return nil, fmt.Errorf("export.XLSX: %w", err)
	}

	return &Export{
		Filename:    csvexport.BuildFilename(snap.Bill.Title, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// Archive renders the requested format, uploads it to the archive bucket, and
// returns a presigned download URL.
func (s *exportService) Archive(ctx context.Context, billID uuid.UUID, format string) (*ArchivedExport, error) {
	var export *Export
	var err error
	switch format {
	case "xlsx":
		export, err = s.XLSX(ctx, billID)
	default:
		export, err = s.CSV(ctx, billID)
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/%s", billID, export.Filename)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(export.Data),
		ContentType: export.ContentType,
		Size:        int64(len(export.Data)),
	})
	if err != nil {
		return nil, domain.ErrExportUploadFailed
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key,
		time.Duration(s.cfg.PresignExpiry)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("export.Archive presign: %w", err)
	}

	return &ArchivedExport{
		Key:         key,
		URL:         url,
		ContentType: export.ContentType,
	}, nil
}

func (s *exportService) summarize(ctx context.Context, billID uuid.UUID) (*domain.BillSnapshot, *domain.SettlementSummary, error) {
	snap, err := s.snapshotRepo.GetBillSnapshot(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	return snap, engine.Settle(snap), nil
}
