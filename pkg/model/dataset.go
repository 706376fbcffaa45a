// pkg/model/dataset.go
package model

// Record maps a column name to its raw value as read from a CSV cell.
type Record map[string]string

// Dataset is an ordered tabular slice of raw records plus the column
// order from the CSV header. Column presence is a property of the
// dataset as a whole, not of individual records.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether the dataset header contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}
