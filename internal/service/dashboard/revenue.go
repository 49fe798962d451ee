package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// RevenueReport is the per-purpose breakdown of collected fees.
type RevenueReport struct {
	Lines []domain.RevenueLine
	Total float64
}

// Revenue returns the successful-payment breakdown by purpose.
func (s *Service) Revenue(ctx context.Context) (*RevenueReport, error) {
	lines, err := s.revenue.RevenueByPurpose(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Revenue: %w", err)
	}

	var total float64
	for _, l := range lines {
		total += l.Total
	}
	return &RevenueReport{Lines: lines, Total: total}, nil
}

// RevenueXLSX renders the revenue report as a spreadsheet for the
// panchayat's offline bookkeeping.
func (s *Service) RevenueXLSX(ctx context.Context) ([]byte, error) {
	report, err := s.Revenue(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Revenue"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("dashboard.RevenueXLSX rename sheet: %w", err)
	}

	headers := []any{"Purpose", "Payments", "Amount (INR)"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("dashboard.RevenueXLSX header: %w", err)
	}

	row := 2
	for _, line := range report.Lines {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &[]any{line.Purpose, line.Count, line.Total}); err != nil {
			return nil, fmt.Errorf("dashboard.RevenueXLSX row: %w", err)
		}
		row++
	}

	totalRow := []any{"Total", "", report.Total}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row+1), &totalRow); err != nil {
		return nil, fmt.Errorf("dashboard.RevenueXLSX total: %w", err)
	}
	if err := f.SetCellValue(sheet, "E1", "Generated "+time.Now().Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("dashboard.RevenueXLSX stamp: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("dashboard.RevenueXLSX write: %w", err)
	}
	return buf.Bytes(), nil
}
