package aerolog

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/normalizer"
)

// DriveReader downloads the export from Google Drive on every read.
type DriveReader struct {
	service   *drive.Service
	fileID    string
	sheet     string
	headerRow int
	logger    logger.Logger
}

// NewDriveReader creates a Drive backed reader. Authentication comes from
// opts, typically option.WithTokenSource.
func NewDriveReader(
	ctx context.Context,
	fileID, sheet string,
	headerRow int,
	logger logger.Logger,
	opts ...option.ClientOption,
) (*DriveReader, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &DriveReader{
		service:   service,
		fileID:    fileID,
		sheet:     sheet,
		headerRow: headerRow,
		logger:    logger,
	}, nil
}

// ReadRows downloads the file content and parses it as a workbook.
func (r *DriveReader) ReadRows(ctx context.Context) ([]normalizer.AerologRow, error) {
	resp, err := r.service.Files.Get(r.fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download aerolog file %s: %w", r.fileID, err)
	}
	defer resp.Body.Close()

	rows, err := ParseWorkbook(resp.Body, r.sheet, r.headerRow)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Downloaded aerolog workbook", "file_id", r.fileID, "rows", len(rows))
	return rows, nil
}
