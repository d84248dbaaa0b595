package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
)

func TestConfigJSON_RoundTrip(t *testing.T) {
	noiseVar := 0.05
	original := &PipelineConfig{
		Name: "roundtrip",
		Preprocess: []PreprocessStep{
			RemoveDCStep{},
			BandpassStep{Low: 5, High: 60},
			TimeWindowStep{T0: 0.1, T1: 1.9},
			NormalizeStep{Method: dataset.NormZScore},
		},
		Model: WienerModel{NoiseVar: &noiseVar},
		Postprocess: []PostprocessStep{
			DenoiseStep{},
			ClipStep{Min: -1, Max: 1},
			NormalizeStep{Method: dataset.NormMinMax},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded PipelineConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)
}

func TestConfigJSON_TaggedWireFormat(t *testing.T) {
	cfg := &PipelineConfig{
		Name:       "wire",
		Preprocess: []PreprocessStep{BandpassStep{Low: 5, High: 60}},
		Model:      MatrixCompletionModel{Lambda: 0.1, MaxIter: 100, Tol: 1e-6},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	var model map[string]interface{}
	require.NoError(t, json.Unmarshal(doc["model"], &model))
	assert.Equal(t, "matrix_completion", model["type"])
	assert.Equal(t, 0.1, model["lambda"])
	assert.Equal(t, float64(100), model["max_iter"])

	var steps []map[string]interface{}
	require.NoError(t, json.Unmarshal(doc["preprocessing"], &steps))
	require.Len(t, steps, 1)
	assert.Equal(t, "bandpass", steps[0]["type"])
	assert.Equal(t, 5.0, steps[0]["low"])
}

func TestConfigJSON_UnknownTags(t *testing.T) {
	_, err := ParseConfig([]byte(`{
		"model": {"type": "deep_prior"}
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownModel)

	_, err = ParseConfig([]byte(`{
		"preprocessing": [{"type": "despike"}],
		"model": {"type": "wiener"}
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownStep)

	_, err = ParseConfig([]byte(`{
		"model": {"type": "wiener"},
		"postprocessing": [{"type": "agc"}]
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownStep)
}

func TestConfigJSON_RequiresModel(t *testing.T) {
	_, err := ParseConfig([]byte(`{"name": "empty"}`))
	require.Error(t, err)
	assert.True(t, core.IsInvalidConfig(err))
}

func TestParseConfig_RunsValidation(t *testing.T) {
	_, err := ParseConfig([]byte(`{
		"model": {"type": "matrix_completion", "lambda": -1, "max_iter": 100, "tol": 1e-6}
	}`))
	require.Error(t, err)
	assert.True(t, core.IsInvalidConfig(err))
}

func TestConfigHash_Determinism(t *testing.T) {
	a := validConfig()
	b := validConfig()

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "equal configs must hash equal")

	c := validConfig()
	c.Model = MatrixCompletionModel{Lambda: 0.2, MaxIter: 100, Tol: 1e-6}
	hc, err := c.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc, "a parameter change must change the hash")

	assert.Len(t, ha.String(), 64)
}
