package analytics

import (
	"bytes"
	"encoding/csv"
	"time"

	"gamehub-admin/internal/model"
)

// csvHeader matches the columns of the admin panel's activity export.
var csvHeader = []string{"Time", "Game", "Category", "Device", "Location", "User ID"}

// ExportCSV renders the raw (unfiltered) event list as CSV bytes.
// Events with a pending timestamp get an empty time column rather than
// being dropped; triggering the actual download is the caller's concern.
func ExportCSV(events []model.ClickEvent) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range events {
		e := &events[i]
		ts := ""
		if e.Timestamp != nil {
			ts = e.Timestamp.UTC().Format(time.RFC3339)
		}
		row := []string{ts, e.GameTitle, e.Category, e.DeviceDescriptor(), e.Location(), e.UserID}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
