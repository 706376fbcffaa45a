// pkg/transform/summaries.go
package transform

import (
	"sort"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// SummarizeTopLabels groups tracks by label and returns the n most
// frequent labels ordered by count descending. Ties keep the label that
// was encountered first in the dataset.
func (t *Transformer) SummarizeTopLabels(tracks []model.Track, n int) ([]model.LabelCount, error) {
	if n <= 0 {
		return nil, &InvalidArgumentError{Name: "n", Value: n, Reason: "must be positive"}
	}

	counts := make(map[string]int, len(tracks))
	order := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if _, seen := counts[track.Label]; !seen {
			order = append(order, track.Label)
		}
		counts[track.Label]++
	}

	summary := make([]model.LabelCount, 0, len(order))
	for _, label := range order {
		summary = append(summary, model.LabelCount{Label: label, Count: counts[label]})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Count > summary[j].Count
	})

	if len(summary) > n {
		summary = summary[:n]
	}
	return summary, nil
}

// SummarizeTopTracks returns the n most popular tracks ordered by
// popularity descending. Ties keep the original dataset order.
func (t *Transformer) SummarizeTopTracks(tracks []model.Track, n int) ([]model.Track, error) {
	if n <= 0 {
		return nil, &InvalidArgumentError{Name: "n", Value: n, Reason: "must be positive"}
	}

	top := make([]model.Track, len(tracks))
	copy(top, tracks)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Popularity > top[j].Popularity
	})

	if len(top) > n {
		top = top[:n]
	}
	return top, nil
}
