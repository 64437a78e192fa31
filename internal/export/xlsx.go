package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/utils"
)

const dateFormat = "2006-01-02"

// sheet is a header plus rows; the last column listed in amountCol is totalled
type sheet struct {
	name      string
	header    []string
	widths    []float64
	amountCol int
	rows      [][]any
}

// Expenses writes an xlsx workbook with one row per expense and a totals row
func Expenses(w io.Writer, expenses []models.Expense) error {
	s := sheet{
		name:      "Expenses",
		header:    []string{"Date", "Description", "Category", "Type", "Frequency", "Next billing", "Currency", "Amount", "Tags"},
		widths:    []float64{12, 40, 18, 14, 12, 14, 10, 14, 24},
		amountCol: 7,
	}
	for _, e := range expenses {
		next := ""
		if e.NextBillingDate != nil {
			next = e.NextBillingDate.Format(dateFormat)
		}
		s.rows = append(s.rows, []any{
			e.Date.Format(dateFormat), e.Description, e.Category, e.ExpenseType, e.Frequency,
			next, e.Currency, e.Amount, strings.Join(e.Tags, ", "),
		})
	}
	return s.write(w)
}

// Incomes writes an xlsx workbook with one row per income record and a totals row
func Incomes(w io.Writer, incomes []models.Income) error {
	s := sheet{
		name:      "Income",
		header:    []string{"Date", "Source", "Category", "Frequency", "Next payment", "Currency", "Amount"},
		widths:    []float64{12, 32, 18, 12, 14, 10, 14},
		amountCol: 6,
	}
	for _, i := range incomes {
		next := ""
		if i.NextPaymentDate != nil {
			next = i.NextPaymentDate.Format(dateFormat)
		}
		s.rows = append(s.rows, []any{
			i.Date.Format(dateFormat), i.Source, i.Category, i.Frequency, next, i.Currency, i.Amount,
		})
	}
	return s.write(w)
}

func (s sheet) write(w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", s.name); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(s.header))
	if err := f.SetCellStyle(s.name, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for i, width := range s.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("failed to size column: %w", err)
		}
	}

	amounts := make([]float64, 0, len(s.rows))
	for i, row := range s.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		if amount, ok := row[s.amountCol].(float64); ok {
			amounts = append(amounts, amount)
		}
	}

	amountCol, _ := excelize.ColumnNumberToName(s.amountCol + 1)
	totalRow := len(s.rows) + 2
	if len(s.rows) > 0 {
		if err := f.SetCellStyle(s.name, fmt.Sprintf("%s2", amountCol), fmt.Sprintf("%s%d", amountCol, totalRow), money); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}
	labelCell := fmt.Sprintf("A%d", totalRow)
	totalCell := fmt.Sprintf("%s%d", amountCol, totalRow)
	if err := f.SetCellValue(s.name, labelCell, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(s.name, totalCell, utils.SumMoney(amounts...)); err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, labelCell, labelCell, bold); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
