package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundline/spotify-ingress/pkg/model"
)

func labeledTracks(labels ...string) []model.Track {
	tracks := make([]model.Track, 0, len(labels))
	for i, label := range labels {
		tracks = append(tracks, model.Track{
			TrackID: "t" + string(rune('a'+i)),
			Label:   label,
		})
	}
	return tracks
}

func TestSummarizeTopLabels(t *testing.T) {
	tr := defaultTestTransformer(t)

	tracks := labeledTracks("Indie", "Major", "Indie", "Boutique", "Major", "Indie")

	summary, err := tr.SummarizeTopLabels(tracks, 2)
	require.NoError(t, err)

	require.Len(t, summary, 2)
	assert.Equal(t, model.LabelCount{Label: "Indie", Count: 3}, summary[0])
	assert.Equal(t, model.LabelCount{Label: "Major", Count: 2}, summary[1])
}

func TestSummarizeTopLabelsTieBreak(t *testing.T) {
	tr := defaultTestTransformer(t)

	// Two labels with identical counts keep first-encountered order.
	tracks := labeledTracks("Beta", "Alpha", "Alpha", "Beta")

	summary, err := tr.SummarizeTopLabels(tracks, 5)
	require.NoError(t, err)

	require.Len(t, summary, 2)
	assert.Equal(t, "Beta", summary[0].Label)
	assert.Equal(t, "Alpha", summary[1].Label)
}

func TestSummarizeTopLabelsCountBound(t *testing.T) {
	tr := defaultTestTransformer(t)

	tracks := labeledTracks("A", "B", "C", "A")

	summary, err := tr.SummarizeTopLabels(tracks, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(summary), 10)

	total := 0
	for _, lc := range summary {
		total += lc.Count
	}
	assert.LessOrEqual(t, total, len(tracks))
}

func TestSummarizeTopLabelsRejectsNonPositiveN(t *testing.T) {
	tr := defaultTestTransformer(t)

	for _, n := range []int{0, -1} {
		_, err := tr.SummarizeTopLabels(labeledTracks("A"), n)
		require.Error(t, err)

		var invalidArg *InvalidArgumentError
		require.ErrorAs(t, err, &invalidArg)
	}
}

func TestSummarizeTopTracks(t *testing.T) {
	tr := defaultTestTransformer(t)

	tracks := []model.Track{
		{TrackID: "t1", Popularity: 60},
		{TrackID: "t2", Popularity: 90},
		{TrackID: "t3", Popularity: 60},
		{TrackID: "t4", Popularity: 75},
	}

	top, err := tr.SummarizeTopTracks(tracks, 3)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, "t2", top[0].TrackID)
	assert.Equal(t, "t4", top[1].TrackID)
	// Tie between t1 and t3 resolves to the earlier record.
	assert.Equal(t, "t1", top[2].TrackID)

	// The input order is untouched.
	assert.Equal(t, "t1", tracks[0].TrackID)
}

func TestSummarizeTopTracksRejectsNonPositiveN(t *testing.T) {
	tr := defaultTestTransformer(t)

	_, err := tr.SummarizeTopTracks(nil, 0)
	require.Error(t, err)

	var invalidArg *InvalidArgumentError
	require.ErrorAs(t, err, &invalidArg)
}
