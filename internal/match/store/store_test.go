package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelmatch-service/internal/match/model"
)

func TestReplaceAndSnapshot(t *testing.T) {
	s := New()
	assert.Empty(t, s.Snapshot())

	recs := []model.Record{
		{Index: 0, Fields: map[string]string{model.FieldAddress: "Main Road"}},
		{Index: 1, Fields: map[string]string{model.FieldAddress: "Alf Casey Road"}},
	}
	s.Replace(recs, "table.csv")

	got := s.Snapshot()
	require.Len(t, got, 2)

	st := s.Stats()
	assert.Equal(t, 2, st.Records)
	assert.Equal(t, "table.csv", st.Source)
	assert.False(t, st.UploadedAt.IsZero())
}

func TestReplaceLeavesOldSnapshotIntact(t *testing.T) {
	s := New()
	s.Replace([]model.Record{{Index: 0}}, "a.csv")
	old := s.Snapshot()

	s.Replace([]model.Record{{Index: 0}, {Index: 1}, {Index: 2}}, "b.csv")
	assert.Len(t, old, 1, "a match pass holding the old snapshot is unaffected")
	assert.Len(t, s.Snapshot(), 3)
}

func TestClear(t *testing.T) {
	s := New()
	s.Replace([]model.Record{{Index: 0}}, "a.csv")
	s.Clear()
	assert.Empty(t, s.Snapshot())
	st := s.Stats()
	assert.Zero(t, st.Records)
	assert.Empty(t, st.Source)
	assert.True(t, st.UploadedAt.IsZero())
}
