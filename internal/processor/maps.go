package processor

import "github.com/isisteel/yard-turnaround/internal/model"

// Canonical column names shared by all four sheets after renaming.
const (
	colPlate      = "Truck_Plate_Number"
	colTimestamp  = "Timestamp"
	colProduct    = "Product_Group"
	colStatus     = "Status"
	colScan       = "Scan_In_or_Out"
	colDirection  = "Coming_to_Load_or_Unload"
	colDriverName = "Driver_Name"
	colPhone      = "Phone_Number"
	colWeight     = "Total_Weight_MT"
	colDeliveryNo = "Outbound_Delivery_No"
	colCondition  = "Truck_Condition"
)

// Rename maps translate the Khmer form headers each sheet exports into the
// canonical column names. Headers already in canonical form pass through.
var securityRename = map[string]string{
	"ស្លាកលេខឡាន":                colPlate,
	"អ្នកកំពុងស្កេនចេញ ឬ ចូល?":   colScan,
	"អ្នកកមកឡើង ឬ ទម្លាក់ឥវ៉ាន់": colDirection,
	"លេខទូរស័ព្វ":                colPhone,
}

var driverRename = map[string]string{
	"ឈ្មោះ":       colDriverName,
	"ស្លាកលេខឡាន": colPlate,
	"លេខទូរស័ព្វ": colPhone,
}

var statusRename = map[string]string{
	"ស្លាកលេខឡាន": colPlate,
	"ប្រភេទទំនិញ": colProduct,
}

var logisticRename = map[string]string{
	"ប្រភេទទំនិញ":          colProduct,
	"ស្លាកលេខឡាន":          colPlate,
	"Total Weight (MT)":    colWeight,
	"Outbound Delivery Nº": colDeliveryNo,
}

// Value maps translate Khmer categorical values into canonical enums.
// Unmapped values pass through untouched; the engine treats them as opaque.
var gateMap = map[string]model.GateAction{
	"ចូល": model.GateIn,
	"ចេញ": model.GateOut,
}

var directionMap = map[string]model.Direction{
	"ឡើង ទំនិញ":     model.DirectionLoading,
	"ទម្លាក់ ទំនិញ": model.DirectionUnloading,
}

var productMap = map[string]string{
	"ទីប ជ្រុង ទីបមូល":           "Pipe",
	"ដំរ៉ូឡូ ជម្រៀក":             "Coil",
	"ដំរ៉ូឡូ":                    "Coil",
	"ដែកសសៃ ដែកកង និង ដែក I & H": "Trading",
	"ស័ង្កសី":                    "Roofing",
	"ស័ង្កសី PU":                 "PU",
}

var statusMap = map[string]model.Status{
	"មកដល់ច្រករង់ចាំ /Arrival":                 model.StatusArrival,
	"ចាប់ផ្តើមឡើងឬទម្លាក់ទំនិញ /Start Loading": model.StatusStartLoading,
	"ឡើងឬទម្លាក់ទំនិញរួចរាល់ /Completed":       model.StatusCompleted,
}
