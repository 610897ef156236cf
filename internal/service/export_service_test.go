package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"splittab/internal/config"
	"splittab/internal/csvexport"
	"splittab/internal/domain"
	"splittab/internal/port"
	"splittab/internal/service"
	"splittab/mocks"
)

var testExportCfg = config.ExportConfig{
	Bucket:        "splittab-exports",
	PresignExpiry: 900,
}

func newExportService() (service.ExportService, *mocks.MockSnapshotRepo, *mocks.MockObjectStorage) {
	snapshotRepo := new(mocks.MockSnapshotRepo)
	storage := new(mocks.MockObjectStorage)
	return service.NewExportService(snapshotRepo, storage, testExportCfg), snapshotRepo, storage
}

func TestExportCSV(t *testing.T) {
	svc, snapshotRepo, _ := newExportService()
	snap, ana, bea := lunchSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)

	export, err := svc.CSV(context.Background(), snap.Bill.ID)
	require.NoError(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", export.ContentType)
	assert.Contains(t, export.Filename, "lunch_")
	assert.Contains(t, export.Filename, ".csv")

	require.Greater(t, len(export.Data), 3)
	assert.Equal(t, csvexport.BOM, export.Data[:3], "Excel needs the BOM to detect UTF-8")

	body := string(export.Data)
	assert.Contains(t, body, ana.Name)
	assert.Contains(t, body, bea.Name)
	assert.Contains(t, body, "25.00")
}

func TestExportXLSX(t *testing.T) {
	svc, snapshotRepo, _ := newExportService()
	snap, _, bea := lunchSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)

	export, err := svc.XLSX(context.Background(), snap.Bill.ID)
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.ContentType)
	assert.Contains(t, export.Filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Participants")
	assert.Contains(t, f.GetSheetList(), "Settlements")

	rows, err := f.GetRows("Settlements")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2, "header plus one transfer")
	assert.Equal(t, bea.Name, rows[1][0])
}

func TestExportArchive(t *testing.T) {
	svc, snapshotRepo, storage := newExportService()
	snap, _, _ := lunchSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)

	var uploaded port.UploadInput
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) { uploaded = args.Get(1).(port.UploadInput) }).
		Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "splittab-exports", mock.AnythingOfType("string"), mock.Anything).
		Return("https://example.com/presigned", nil)

	archived, err := svc.Archive(context.Background(), snap.Bill.ID, "csv")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/presigned", archived.URL)
	assert.Contains(t, archived.Key, "exports/"+snap.Bill.ID.String()+"/")
	assert.Equal(t, "splittab-exports", uploaded.Bucket)
	assert.Equal(t, archived.Key, uploaded.Key)
	storage.AssertExpectations(t)
}

func TestExportArchive_UploadFailure(t *testing.T) {
	svc, snapshotRepo, storage := newExportService()
	snap, _, _ := lunchSnapshot()
	snapshotRepo.On("GetBillSnapshot", mock.Anything, snap.Bill.ID).Return(snap, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := svc.Archive(context.Background(), snap.Bill.ID, "csv")

	assert.ErrorIs(t, err, domain.ErrExportUploadFailed)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
