package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/alumbridge/scholarship-service/internal/repositories"
)

const ledgerSheet = "Contributions"

// LedgerExporter renders the full contribution ledger as a spreadsheet for
// the alumni office.
type LedgerExporter struct {
	repo repositories.Repository
}

func NewLedgerExporter(repo repositories.Repository) *LedgerExporter {
	return &LedgerExporter{repo: repo}
}

// Workbook builds an .xlsx file with one row per ledger entry, oldest first.
func (e *LedgerExporter) Workbook(ctx context.Context) (*excelize.File, error) {
	contributions, err := e.repo.Contribution().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}

	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].CreatedAt.Before(contributions[j].CreatedAt)
	})

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", ledgerSheet)

	headers := []string{"Contribution ID", "Alumni ID", "Student ID", "Amount", "Recorded At"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ledgerSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, c := range contributions {
		values := []any{c.ID, c.AlumniID, c.StudentID, c.Amount, c.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
