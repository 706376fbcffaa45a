// pkg/model/summary.go
package model

// LabelCount pairs a record label with the number of tracks released
// under it. Summaries are ordered sequences, not maps, so downstream
// consumers see a deterministic ranking.
type LabelCount struct {
	Label string
	Count int
}
