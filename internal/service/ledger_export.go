package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

var ledgerExportHeader = []string{
	"ID", "Deal", "Payment Date", "Amount", "Currency", "Mode",
	"Type", "Status", "Paid By", "Paid To", "Reference", "Notes",
}

func ledgerExportRow(entry LedgerEntry) []string {
	return []string{
		strconv.FormatUint(uint64(entry.ID), 10),
		entry.DealName,
		entry.PaymentDate.Format("2006-01-02"),
		entry.Amount.String(),
		entry.Currency,
		entry.PaymentMode,
		entry.PaymentType,
		entry.Status,
		entry.PaidByName,
		entry.PaidToName,
		entry.Reference,
		entry.Notes,
	}
}

// ExportCSV 将台账写为 CSV
func (s *LedgerService) ExportCSV(w io.Writer, entries []LedgerEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ledgerExportHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write(ledgerExportRow(entry)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportXLSX 将台账写为 xlsx 工作簿
func (s *LedgerService) ExportXLSX(w io.Writer, entries []LedgerEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ledger"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range ledgerExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for rowIdx, entry := range entries {
		for col, value := range ledgerExportRow(entry) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "I", "L", 22); err != nil {
		return err
	}

	return f.Write(w)
}

// ExportPDF 将台账渲染为 PDF：标题行加每笔付款一个区块，
// 含金额、方式、参考号与参与方明细。
func (s *LedgerService) ExportPDF(w io.Writer, entries []LedgerEntry) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, s.cfg.Ledger.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	symbol := s.cfg.Ledger.CurrencySymbol

	for _, entry := range entries {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7,
			fmt.Sprintf("#%d  %s  %s %s", entry.ID, entry.DealName, symbol, entry.Amount.String()),
			"", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5,
			fmt.Sprintf("Date: %s    Mode: %s    Type: %s    Status: %s",
				entry.PaymentDate.Format("2006-01-02"), entry.PaymentMode, entry.PaymentType, entry.Status),
			"", 1, "L", false, 0, "")
		if entry.PaidByName != "" || entry.PaidToName != "" {
			pdf.CellFormat(0, 5,
				fmt.Sprintf("Paid by: %s    Paid to: %s", entry.PaidByName, entry.PaidToName),
				"", 1, "L", false, 0, "")
		}
		if entry.Reference != "" {
			pdf.CellFormat(0, 5, "Reference: "+entry.Reference, "", 1, "L", false, 0, "")
		}

		if len(entry.Parties) > 0 {
			pdf.SetFont("Arial", "I", 9)
			for _, party := range entry.Parties {
				line := fmt.Sprintf("  - %s", party.PartyType)
				if party.PartyID != nil {
					line += fmt.Sprintf(" #%d", *party.PartyID)
				}
				line += fmt.Sprintf("  %s %s", symbol, party.Amount.String())
				if party.Percentage != 0 {
					line += fmt.Sprintf("  (%.2f%%)", party.Percentage)
				}
				if party.Role != "" {
					line += "  " + party.Role
				}
				pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(3)
	}

	return pdf.Output(w)
}
