package http

import (
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
)

type visitDTO struct {
	Plate   string  `json:"plate"`
	Product *string `json:"product"`
	Date    *string `json:"date"`

	ArrivalTime      *string `json:"arrival_time"`
	StartLoadingTime *string `json:"start_loading_time"`
	CompletedTime    *string `json:"completed_time"`

	WaitingMin *float64 `json:"waiting_min"`
	LoadingMin *float64 `json:"loading_min"`
	TotalMin   *float64 `json:"total_min"`

	IsValidOrder bool    `json:"is_valid_order"`
	OrderError   *string `json:"order_error"`
	DataQuality  string  `json:"data_quality"`
	Mission      string  `json:"mission"`

	WeightMT       *float64 `json:"weight_mt"`
	DeliveryNo     *string  `json:"delivery_no"`
	TruckCondition *string  `json:"truck_condition"`
	Direction      *string  `json:"direction"`
	Phone          *string  `json:"phone"`
	DriverName     *string  `json:"driver_name"`

	LoadingRateMinPerMT *float64 `json:"loading_rate_min_per_mt"`
	LoadingRateMTPerHr  *float64 `json:"loading_rate_mt_per_hr"`
}

type waitingDTO struct {
	Plate       string   `json:"plate"`
	Product     *string  `json:"product"`
	Date        *string  `json:"date"`
	ArrivalTime *string  `json:"arrival_time"`
	WaitingMin  float64  `json:"waiting_min"`
	Direction   *string  `json:"direction"`
	WeightMT    *float64 `json:"weight_mt"`
	DeliveryNo  *string  `json:"delivery_no"`
	Phone       *string  `json:"phone"`
	DriverName  *string  `json:"driver_name"`
}

type statusCountsDTO struct {
	Waiting      int `json:"waiting"`
	StartLoading int `json:"start_loading"`
	Completed    int `json:"completed"`
}

type productSummaryDTO struct {
	Product   *string `json:"product"`
	Direction *string `json:"direction"`

	TruckCount      int     `json:"truck_count"`
	TotalWeightMT   float64 `json:"total_weight_mt"`
	TotalLoadingMin float64 `json:"total_loading_min"`

	LoadingRateMinPerMT *float64 `json:"loading_rate_min_per_mt"`
	LoadingRateMTPerHr  *float64 `json:"loading_rate_mt_per_hr"`
}

type truckTurnaroundDTO struct {
	Plate        string  `json:"plate"`
	Date         *string `json:"date"`
	ProductCount int     `json:"product_count"`

	TotalWeightMT *float64 `json:"total_weight_mt"`
	WaitingMin    *float64 `json:"waiting_min"`
	LoadingMin    *float64 `json:"loading_min"`

	DriverInTime *string `json:"driver_in_time"`
	LastDocTime  *string `json:"last_doc_time"`
	GateInTime   *string `json:"gate_in_time"`
	GateOutTime  *string `json:"gate_out_time"`

	DocumentationMin *float64 `json:"documentation_min"`
	TurnaroundMin    *float64 `json:"turnaround_min"`
	ProcessingMin    *float64 `json:"processing_min"`
	DwellingMin      *float64 `json:"dwelling_min"`

	Phone *string `json:"phone"`
}

func visitsToDTO(visits []model.Visit) []visitDTO {
	out := make([]visitDTO, 0, len(visits))
	for _, v := range visits {
		out = append(out, visitDTO{
			Plate:               v.Plate,
			Product:             v.Product,
			Date:                dateString(v.Date),
			ArrivalTime:         timeString(v.ArrivalTime),
			StartLoadingTime:    timeString(v.StartLoadingTime),
			CompletedTime:       timeString(v.CompletedTime),
			WaitingMin:          v.WaitingMin,
			LoadingMin:          v.LoadingMin,
			TotalMin:            v.TotalMin,
			IsValidOrder:        v.IsValidOrder,
			OrderError:          v.OrderError,
			DataQuality:         v.DataQuality,
			Mission:             v.Mission,
			WeightMT:            v.WeightMT,
			DeliveryNo:          v.DeliveryNo,
			TruckCondition:      v.TruckCondition,
			Direction:           directionString(v.Direction),
			Phone:               v.Phone,
			DriverName:          v.DriverName,
			LoadingRateMinPerMT: v.LoadingRateMinPerMT,
			LoadingRateMTPerHr:  v.LoadingRateMTPerHr,
		})
	}
	return out
}

func waitingToDTO(waiting []model.WaitingTruck) []waitingDTO {
	out := make([]waitingDTO, 0, len(waiting))
	for _, w := range waiting {
		out = append(out, waitingDTO{
			Plate:       w.Plate,
			Product:     w.Product,
			Date:        dateString(w.Date),
			ArrivalTime: timeString(w.ArrivalTime),
			WaitingMin:  w.WaitingMin,
			Direction:   directionString(w.Direction),
			WeightMT:    w.WeightMT,
			DeliveryNo:  w.DeliveryNo,
			Phone:       w.Phone,
			DriverName:  w.DriverName,
		})
	}
	return out
}

func productsToDTO(products []model.ProductSummary) []productSummaryDTO {
	out := make([]productSummaryDTO, 0, len(products))
	for _, p := range products {
		out = append(out, productSummaryDTO{
			Product:             p.Product,
			Direction:           directionString(p.Direction),
			TruckCount:          p.TruckCount,
			TotalWeightMT:       p.TotalWeightMT,
			TotalLoadingMin:     p.TotalLoadingMin,
			LoadingRateMinPerMT: p.LoadingRateMinPerMT,
			LoadingRateMTPerHr:  p.LoadingRateMTPerHr,
		})
	}
	return out
}

func trucksToDTO(trucks []model.TruckTurnaround) []truckTurnaroundDTO {
	out := make([]truckTurnaroundDTO, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, truckTurnaroundDTO{
			Plate:            t.Plate,
			Date:             dateString(t.Date),
			ProductCount:     t.ProductCount,
			TotalWeightMT:    t.TotalWeightMT,
			WaitingMin:       t.WaitingMin,
			LoadingMin:       t.LoadingMin,
			DriverInTime:     timeString(t.DriverInTime),
			LastDocTime:      timeString(t.LastDocTime),
			GateInTime:       timeString(t.GateInTime),
			GateOutTime:      timeString(t.GateOutTime),
			DocumentationMin: t.DocumentationMin,
			TurnaroundMin:    t.TurnaroundMin,
			ProcessingMin:    t.ProcessingMin,
			DwellingMin:      t.DwellingMin,
			Phone:            t.Phone,
		})
	}
	return out
}

func dateString(d *model.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func directionString(d *model.Direction) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}
