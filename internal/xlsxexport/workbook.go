package xlsxexport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"splittab/internal/domain"
)

const (
	participantSheet = "Participants"
	settlementSheet  = "Settlements"
)

// BuildWorkbook renders a settlement summary as an XLSX workbook with one
// sheet of participant standings and one of optimized transfers.
func BuildWorkbook(summary *domain.SettlementSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(participantSheet)
	if err != nil {
		return nil, fmt.Errorf("creating participant sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	headers := []interface{}{"Participant", "Owes", "Paid", "Balance", "Currency"}
	if err := f.SetSheetRow(participantSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("writing participant header: %w", err)
	}
	for i, p := range summary.Participants {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{p.Name, p.Owes, p.Paid, p.Balance, summary.CurrencySymbol}
		if err := f.SetSheetRow(participantSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing participant row: %w", err)
		}
	}

	if _, err := f.NewSheet(settlementSheet); err != nil {
		return nil, fmt.Errorf("creating settlement sheet: %w", err)
	}
	transferHeaders := []interface{}{"From", "To", "Amount", "Currency"}
	if err := f.SetSheetRow(settlementSheet, "A1", &transferHeaders); err != nil {
		return nil, fmt.Errorf("writing settlement header: %w", err)
	}
	for i, t := range summary.OptimizedSettlements {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{t.From, t.To, t.Amount, summary.CurrencySymbol}
		if err := f.SetSheetRow(settlementSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing settlement row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf, nil
}
