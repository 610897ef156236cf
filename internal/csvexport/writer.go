package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"splittab/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var participantColumns = []string{
	"Participant",
	"Owes",
	"Paid",
	"Balance",
	"Currency",
}

var transferColumns = []string{
	"From",
	"To",
	"Amount",
	"Currency",
}

// Writer wraps csv.Writer for exporting settlement summaries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteSummary writes the participant standings section followed by the
// optimized settlement section, separated by a blank row.
func (w *Writer) WriteSummary(summary *domain.SettlementSummary) error {
	if err := w.csv.Write(participantColumns); err != nil {
		return err
	}
	for _, p := range summary.Participants {
		row := []string{
			p.Name,
			formatMoney(p.Owes),
			formatMoney(p.Paid),
			formatMoney(p.Balance),
			summary.CurrencySymbol,
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	if err := w.csv.Write([]string{}); err != nil {
		return err
	}

	if err := w.csv.Write(transferColumns); err != nil {
		return err
	}
	for _, t := range summary.OptimizedSettlements {
		row := []string{
			t.From,
			t.To,
			formatMoney(t.Amount),
			summary.CurrencySymbol,
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a bill title for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_bill_title}_{YYYY-MM-DD}.{ext}
func BuildFilename(billTitle, ext string) string {
	sanitized := SanitizeFilename(billTitle)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
