// pkg/transform/normalize.go
package transform

import (
	"strings"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// columnRenames is the fixed rename map applied after column name
// normalization. The tracks CSV ships its join key as plain "id".
var columnRenames = map[string]string{
	"id": model.ColTrackID,
}

// normalizeColumnName lowercases, trims and snake-cases a raw header
// name, then applies the fixed rename map.
func normalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	if renamed, ok := columnRenames[name]; ok {
		return renamed
	}
	return name
}

// normalizeDataset returns a copy of the dataset with normalized column
// names in both the header and every record. The input is not mutated.
func normalizeDataset(ds model.Dataset) model.Dataset {
	out := model.Dataset{
		Columns: make([]string, 0, len(ds.Columns)),
		Records: make([]model.Record, 0, len(ds.Records)),
	}

	renames := make(map[string]string, len(ds.Columns))
	for _, col := range ds.Columns {
		normalized := normalizeColumnName(col)
		renames[col] = normalized
		out.Columns = append(out.Columns, normalized)
	}

	for _, rec := range ds.Records {
		normalized := make(model.Record, len(rec))
		for key, value := range rec {
			newKey, ok := renames[key]
			if !ok {
				newKey = normalizeColumnName(key)
			}
			normalized[newKey] = value
		}
		out.Records = append(out.Records, normalized)
	}

	return out
}
