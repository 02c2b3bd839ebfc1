//go:generate mockgen -source ./export.go -destination=./mocks/export.go -package=mock_export
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

const dateLayout = "2006-01-02"

var ErrUploadDisabled = errors.New("route sheet upload is not configured")

type DeliveryLister interface {
	ListDeliveries(ctx context.Context, date time.Time) ([]storage.Delivery, error)
}

type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
}

var header = []string{"delivery_id", "date", "slot", "customer", "address", "milk_type", "quantity", "status"}

// Exporter turns a day's deliveries into a CSV route sheet for the delivery crew.
type Exporter struct {
	deliveries DeliveryLister
	uploader   Uploader
	logger     *zap.Logger
}

// NewExporter builds an exporter. A nil uploader keeps the CSV download working
// and makes Upload return ErrUploadDisabled.
func NewExporter(deliveries DeliveryLister, uploader Uploader) *Exporter {
	return &Exporter{
		deliveries: deliveries,
		uploader:   uploader,
		logger:     zap.L().Named("export"),
	}
}

func (e *Exporter) Enabled() bool {
	return e.uploader != nil
}

// Render writes the route sheet of date to w.
func (e *Exporter) Render(ctx context.Context, date time.Time, w io.Writer) (int, error) {
	list, err := e.deliveries.ListDeliveries(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list deliveries: %w", err)
	}
	if err := WriteRouteSheet(w, list); err != nil {
		return 0, err
	}
	return len(list), nil
}

// Upload renders the route sheet of date and stores it under routes/<date>.csv.
func (e *Exporter) Upload(ctx context.Context, date time.Time) (string, error) {
	if e.uploader == nil {
		return "", ErrUploadDisabled
	}

	var buf bytes.Buffer
	n, err := e.Render(ctx, date, &buf)
	if err != nil {
		return "", err
	}

	key := RouteSheetKey(date)
	if err := e.uploader.Upload(ctx, key, &buf, "text/csv"); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("route_sheet_upload").Inc()
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	e.logger.Info("route sheet uploaded", zap.String("key", key), zap.Int("deliveries", n))
	return key, nil
}

func RouteSheetKey(date time.Time) string {
	return "routes/" + date.Format(dateLayout) + ".csv"
}

func WriteRouteSheet(w io.Writer, list []storage.Delivery) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, d := range list {
		record := []string{
			fmt.Sprint(d.ID),
			d.DeliveryDate,
			d.SlotType,
			d.CustomerName,
			d.Address,
			d.MilkType,
			d.Quantity.String(),
			d.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write delivery %d: %w", d.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
