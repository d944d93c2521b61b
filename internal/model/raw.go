package model

// RawTable is one sheet as fetched: a header row plus string cells. All
// typing (timestamps, numerics, categories) happens in the processor; blank
// cells mean "missing".
type RawTable struct {
	Header []string
	Rows   [][]string
}

// RawTables is one fetch of all four sheets.
type RawTables struct {
	Security RawTable
	Driver   RawTable
	Status   RawTable
	Logistic RawTable
}
