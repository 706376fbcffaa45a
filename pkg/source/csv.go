// pkg/source/csv.go
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// ReadCSV parses CSV content into a raw dataset. The first row is the
// header; rows shorter than the header leave the trailing columns
// empty, rows longer than it drop the surplus cells.
func ReadCSV(r io.Reader) (model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return model.Dataset{}, errors.New("csv input is empty")
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	ds := model.Dataset{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Dataset{}, fmt.Errorf("failed to read csv row: %w", err)
		}

		rec := make(model.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// ReadCSVFile parses the CSV file at path into a raw dataset.
func ReadCSVFile(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ds, nil
}
