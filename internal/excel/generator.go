package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/isisteel/yard-turnaround/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.TurnaroundReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	visitsSheet := "Visits"
	file.NewSheet(visitsSheet)
	if err := g.writeVisits(file, visitsSheet, report.Visits); err != nil {
		return nil, err
	}

	productsSheet := "Loading Performance"
	file.NewSheet(productsSheet)
	if err := g.writeProducts(file, productsSheet, report.Products); err != nil {
		return nil, err
	}

	trucksSheet := "Truck Turnaround"
	file.NewSheet(trucksSheet)
	if err := g.writeTrucks(file, trucksSheet, report.Trucks); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.TurnaroundReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalWeight := 0.0
	validOrders := 0
	for _, visit := range report.Visits {
		if visit.WeightMT != nil {
			totalWeight += *visit.WeightMT
		}
		if visit.IsValidOrder {
			validOrders++
		}
	}

	set("A1", "Report")
	set("B1", "Yard Turnaround")
	set("A2", "Period start")
	set("B2", report.PeriodStart.String())
	set("A3", "Period end")
	set("B3", report.PeriodEnd.String())
	set("A4", "Generated at")
	set("B4", formatDateTime(report.GeneratedAt))
	set("A5", "Visits")
	set("B5", len(report.Visits))
	set("A6", "Visits with valid event order")
	set("B6", validOrders)
	set("A7", "Total weight, MT")
	set("B7", fmt.Sprintf("%.2f", totalWeight))

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 22)
	return nil
}

func (g *Generator) writeVisits(file *excelize.File, sheet string, visits []model.Visit) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Date",
		"Plate",
		"Product",
		"Direction",
		"Arrival",
		"Start Loading",
		"Completed",
		"Waiting, min",
		"Loading, min",
		"Total, min",
		"Weight, MT",
		"Delivery No",
		"Condition",
		"Driver",
		"Phone",
		"Data Quality",
		"Order Error",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, visit := range visits {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), formatDatePtr(visit.Date))
		set(fmt.Sprintf("B%d", row), visit.Plate)
		set(fmt.Sprintf("C%d", row), formatString(visit.Product))
		set(fmt.Sprintf("D%d", row), formatDirection(visit.Direction))
		set(fmt.Sprintf("E%d", row), formatTimePtr(visit.ArrivalTime))
		set(fmt.Sprintf("F%d", row), formatTimePtr(visit.StartLoadingTime))
		set(fmt.Sprintf("G%d", row), formatTimePtr(visit.CompletedTime))
		set(fmt.Sprintf("H%d", row), formatFloat(visit.WaitingMin))
		set(fmt.Sprintf("I%d", row), formatFloat(visit.LoadingMin))
		set(fmt.Sprintf("J%d", row), formatFloat(visit.TotalMin))
		set(fmt.Sprintf("K%d", row), formatFloat(visit.WeightMT))
		set(fmt.Sprintf("L%d", row), formatString(visit.DeliveryNo))
		set(fmt.Sprintf("M%d", row), formatString(visit.TruckCondition))
		set(fmt.Sprintf("N%d", row), formatString(visit.DriverName))
		set(fmt.Sprintf("O%d", row), formatString(visit.Phone))
		set(fmt.Sprintf("P%d", row), visit.DataQuality)
		set(fmt.Sprintf("Q%d", row), formatString(visit.OrderError))
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	_ = file.SetColWidth(sheet, "C", "D", 12)
	_ = file.SetColWidth(sheet, "E", "G", 20)
	_ = file.SetColWidth(sheet, "H", "K", 12)
	_ = file.SetColWidth(sheet, "L", "O", 16)
	_ = file.SetColWidth(sheet, "P", "Q", 28)
	return nil
}

func (g *Generator) writeProducts(file *excelize.File, sheet string, products []model.ProductSummary) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Product",
		"Direction",
		"Trucks",
		"Total weight, MT",
		"Total loading, min",
		"Rate, min/MT",
		"Rate, MT/hour",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, product := range products {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), formatString(product.Product))
		set(fmt.Sprintf("B%d", row), formatDirection(product.Direction))
		set(fmt.Sprintf("C%d", row), product.TruckCount)
		set(fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", product.TotalWeightMT))
		set(fmt.Sprintf("E%d", row), fmt.Sprintf("%.1f", product.TotalLoadingMin))
		set(fmt.Sprintf("F%d", row), formatFloat(product.LoadingRateMinPerMT))
		set(fmt.Sprintf("G%d", row), formatFloat(product.LoadingRateMTPerHr))
	}

	_ = file.SetColWidth(sheet, "A", "B", 14)
	_ = file.SetColWidth(sheet, "C", "G", 16)
	return nil
}

func (g *Generator) writeTrucks(file *excelize.File, sheet string, trucks []model.TruckTurnaround) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Plate",
		"Date",
		"Products",
		"Weight, MT",
		"Waiting, min",
		"Loading, min",
		"Documentation, min",
		"Processing, min",
		"Turnaround, min",
		"Dwelling, min",
		"Driver In",
		"Last Document",
		"Gate In",
		"Gate Out",
		"Phone",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, truck := range trucks {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), truck.Plate)
		set(fmt.Sprintf("B%d", row), formatDatePtr(truck.Date))
		set(fmt.Sprintf("C%d", row), truck.ProductCount)
		set(fmt.Sprintf("D%d", row), formatFloat(truck.TotalWeightMT))
		set(fmt.Sprintf("E%d", row), formatFloat(truck.WaitingMin))
		set(fmt.Sprintf("F%d", row), formatFloat(truck.LoadingMin))
		set(fmt.Sprintf("G%d", row), formatFloat(truck.DocumentationMin))
		set(fmt.Sprintf("H%d", row), formatFloat(truck.ProcessingMin))
		set(fmt.Sprintf("I%d", row), formatFloat(truck.TurnaroundMin))
		set(fmt.Sprintf("J%d", row), formatFloat(truck.DwellingMin))
		set(fmt.Sprintf("K%d", row), formatTimePtr(truck.DriverInTime))
		set(fmt.Sprintf("L%d", row), formatTimePtr(truck.LastDocTime))
		set(fmt.Sprintf("M%d", row), formatTimePtr(truck.GateInTime))
		set(fmt.Sprintf("N%d", row), formatTimePtr(truck.GateOutTime))
		set(fmt.Sprintf("O%d", row), formatString(truck.Phone))
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 12)
	_ = file.SetColWidth(sheet, "C", "J", 16)
	_ = file.SetColWidth(sheet, "K", "N", 20)
	_ = file.SetColWidth(sheet, "O", "O", 16)
	return nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDateTime(*t)
}

func formatDatePtr(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDirection(value *model.Direction) string {
	if value == nil {
		return ""
	}
	return string(*value)
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *value)
}
