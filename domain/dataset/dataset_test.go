package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seisrec/domain/core"
)

func TestNew_DeepCopiesInput(t *testing.T) {
	traces := [][]float64{{1, 2, 3}, {4, 5, 6}}

	ds, err := New(traces, 0.004)
	require.NoError(t, err)

	traces[0][0] = 99
	assert.Equal(t, 1.0, ds.Trace(0)[0], "dataset must not alias caller slices")
}

func TestNew_Validation(t *testing.T) {
	traces := [][]float64{{1, 2}, {3, 4}}

	_, err := New(traces, 0)
	require.Error(t, err)
	assert.True(t, core.IsInvalidConfig(err), "dt=0 should be a config error")

	_, err = New(nil, 0.004)
	assert.True(t, errors.Is(err, core.ErrEmptyDataset), "nil traces should be empty dataset")

	_, err = New([][]float64{{}}, 0.004)
	assert.True(t, errors.Is(err, core.ErrEmptyDataset), "empty row should be empty dataset")

	_, err = New([][]float64{{1, 2}, {3}}, 0.004)
	require.Error(t, err)
	assert.True(t, core.IsInvalidData(err), "ragged traces should be a data error")
}

func TestDataset_ShapeAndDuration(t *testing.T) {
	traces := make([][]float64, 8)
	for i := range traces {
		traces[i] = make([]float64, 512)
	}
	ds, err := New(traces, 0.004)
	require.NoError(t, err)

	assert.Equal(t, 8, ds.NumTraces())
	assert.Equal(t, 512, ds.NumSamples())
	assert.Equal(t, 0.004, ds.Dt())
	// Sample k sits at k*dt, so 512 samples span 511 intervals.
	assert.InDelta(t, 2.044, ds.Duration(), 1e-12)
}

func TestDataset_AccessorsReturnCopies(t *testing.T) {
	ds, err := New([][]float64{{1, 2}, {3, 4}}, 0.004)
	require.NoError(t, err)

	tr := ds.Trace(0)
	tr[0] = 99
	assert.Equal(t, 1.0, ds.Trace(0)[0])

	all := ds.Traces()
	all[1][1] = 99
	assert.Equal(t, 4.0, ds.Trace(1)[1])

	withMeta := ds.WithMetadata("source", "synthetic")
	meta := withMeta.Metadata()
	meta["source"] = "tampered"
	assert.Equal(t, "synthetic", withMeta.Metadata()["source"])
}

func TestDataset_WithMetadataDerivesNewValue(t *testing.T) {
	ds, err := New([][]float64{{1, 2}}, 0.004)
	require.NoError(t, err)

	derived := ds.WithMetadata("model", "wiener")
	assert.Empty(t, ds.Metadata(), "original must stay untouched")
	assert.Equal(t, "wiener", derived.Metadata()["model"])

	overwritten := derived.WithMetadata("model", "fista")
	assert.Equal(t, "wiener", derived.Metadata()["model"])
	assert.Equal(t, "fista", overwritten.Metadata()["model"])
}

func TestDataset_WithCoords(t *testing.T) {
	ds, err := New([][]float64{{1, 2}, {3, 4}}, 0.004)
	require.NoError(t, err)

	coords := [][]float64{{0, 0}, {10, 0}}
	located, err := ds.WithCoords(coords)
	require.NoError(t, err)

	coords[0][0] = 99
	assert.Equal(t, 0.0, located.Coords()[0][0], "coords must be copied")
	assert.Nil(t, ds.Coords(), "original has no coords")

	_, err = ds.WithCoords([][]float64{{0, 0}})
	require.Error(t, err)
	assert.True(t, core.IsInvalidData(err), "coord row mismatch should be a data error")
}

func TestDataset_WithTraces(t *testing.T) {
	ds, err := New([][]float64{{1, 2}, {3, 4}}, 0.004)
	require.NoError(t, err)
	ds = ds.WithMetadata("source", "test")
	located, err := ds.WithCoords([][]float64{{0, 0}, {1, 0}})
	require.NoError(t, err)

	replaced, err := located.WithTraces([][]float64{{9, 8}, {7, 6}})
	require.NoError(t, err)
	assert.Equal(t, 9.0, replaced.Trace(0)[0])
	assert.Equal(t, 0.004, replaced.Dt())
	assert.Equal(t, "test", replaced.Metadata()["source"])
	assert.NotNil(t, replaced.Coords(), "coords survive while trace count matches")

	// A different trace count drops the per-trace coordinates.
	shrunk, err := located.WithTraces([][]float64{{1, 2}})
	require.NoError(t, err)
	assert.Nil(t, shrunk.Coords())

	_, err = located.WithTraces([][]float64{{1, 2}, {3}})
	assert.Error(t, err, "replacement traces are validated like New")
}

func TestDataset_Fingerprint(t *testing.T) {
	a, err := New([][]float64{{1, 2}, {3, 4}}, 0.004)
	require.NoError(t, err)
	b, err := New([][]float64{{1, 2}, {3, 4}}, 0.004)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "equal content must fingerprint equally")

	c, err := New([][]float64{{1, 2}, {3, 4.0000001}}, 0.004)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint(), "one changed sample must change the fingerprint")

	d, err := New([][]float64{{1, 2}, {3, 4}}, 0.002)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint(), "dt is part of the fingerprint")

	assert.Len(t, a.Fingerprint().String(), 64, "fingerprint is a hex sha256")
}
