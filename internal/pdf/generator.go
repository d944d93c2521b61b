package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/isisteel/yard-turnaround/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(report model.TurnaroundReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Yard Turnaround Report", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s", report.PeriodStart.String(), report.PeriodEnd.String()), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.writeProducts(pdf, report.Products)
	pdf.Ln(4)
	g.writeTrucks(pdf, report.Trucks)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeProducts(pdf *gofpdf.Fpdf, products []model.ProductSummary) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Loading Performance", "", 1, "L", false, 0, "")

	headers := []string{"Product", "Direction", "Trucks", "Weight, MT", "Loading, min", "min/MT", "MT/hour"}
	widths := []float64{45, 35, 25, 35, 35, 30, 30}
	g.drawRow(pdf, headers, widths, true)

	for _, product := range products {
		row := []string{
			safeValue(derefString(product.Product)),
			safeValue(directionValue(product.Direction)),
			fmt.Sprintf("%d", product.TruckCount),
			fmt.Sprintf("%.2f", product.TotalWeightMT),
			fmt.Sprintf("%.1f", product.TotalLoadingMin),
			formatFloat(product.LoadingRateMinPerMT),
			formatFloat(product.LoadingRateMTPerHr),
		}
		g.drawRow(pdf, row, widths, false)
	}
}

func (g *Generator) writeTrucks(pdf *gofpdf.Fpdf, trucks []model.TruckTurnaround) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Truck Turnaround", "", 1, "L", false, 0, "")

	headers := []string{
		"Plate", "Date", "Weight, MT", "Waiting", "Loading",
		"Documentation", "Processing", "Turnaround", "Dwelling",
		"Gate In", "Gate Out",
	}
	widths := []float64{28, 22, 22, 20, 20, 28, 24, 24, 22, 32, 32}

	g.drawRow(pdf, headers, widths, true)
	for _, truck := range trucks {
		row := []string{
			truck.Plate,
			dateValue(truck.Date),
			formatFloat(truck.TotalWeightMT),
			formatFloat(truck.WaitingMin),
			formatFloat(truck.LoadingMin),
			formatFloat(truck.DocumentationMin),
			formatFloat(truck.ProcessingMin),
			formatFloat(truck.TurnaroundMin),
			formatFloat(truck.DwellingMin),
			formatTime(truck.GateInTime),
			formatTime(truck.GateOutTime),
		}
		g.drawRow(pdf, row, widths, false)
	}
}

func (g *Generator) drawRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	size := 8.0
	if header {
		style = "B"
		size = 8.5
	}
	pdf.SetFont(g.fontName, style, size)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func directionValue(value *model.Direction) string {
	if value == nil {
		return ""
	}
	return string(*value)
}

func dateValue(d *model.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func formatFloat(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
