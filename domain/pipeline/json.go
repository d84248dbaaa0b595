package pipeline

import (
	"encoding/json"
	"fmt"

	"seisrec/domain/core"
)

// Wire format: every step and model serializes as an object with a
// "type" tag next to its parameters, e.g.
//
//	{"type": "matrix_completion", "lambda": 0.1, "max_iter": 100, "tol": 1e-6}
//
// Unknown tags fail decoding; no other keys are interpreted.

type configWire struct {
	Name           string            `json:"name,omitempty"`
	Preprocessing  []json.RawMessage `json:"preprocessing,omitempty"`
	Model          json.RawMessage   `json:"model"`
	Postprocessing []json.RawMessage `json:"postprocessing,omitempty"`
}

type typeTag struct {
	Type string `json:"type"`
}

// ParseConfig decodes and validates a serialized pipeline config.
func ParseConfig(data []byte) (*PipelineConfig, error) {
	var c PipelineConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Hash identifies the config by its canonical JSON encoding. Field
// and list order are fixed by the codec, so equal configs always hash
// equal.
func (c *PipelineConfig) Hash() (core.ConfigHash, error) {
	data, err := json.Marshal(*c)
	if err != nil {
		return "", err
	}
	return core.NewConfigHash(data), nil
}

// MarshalJSON encodes the config as a tagged-union document.
func (c PipelineConfig) MarshalJSON() ([]byte, error) {
	if c.Model == nil {
		return nil, core.NewConfigError("model", "is required")
	}
	wire := configWire{Name: c.Name}
	for _, s := range c.Preprocess {
		raw, err := marshalPreprocess(s)
		if err != nil {
			return nil, err
		}
		wire.Preprocessing = append(wire.Preprocessing, raw)
	}
	raw, err := marshalModel(c.Model)
	if err != nil {
		return nil, err
	}
	wire.Model = raw
	for _, s := range c.Postprocess {
		raw, err := marshalPostprocess(s)
		if err != nil {
			return nil, err
		}
		wire.Postprocessing = append(wire.Postprocessing, raw)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes a tagged-union document. Validation is
// separate: callers use ParseConfig or Validate explicitly.
func (c *PipelineConfig) UnmarshalJSON(data []byte) error {
	var wire configWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return core.NewConfigError("pipeline config", err.Error())
	}
	out := PipelineConfig{Name: wire.Name}
	for _, raw := range wire.Preprocessing {
		step, err := unmarshalPreprocess(raw)
		if err != nil {
			return err
		}
		out.Preprocess = append(out.Preprocess, step)
	}
	if len(wire.Model) == 0 {
		return core.NewConfigError("model", "is required")
	}
	model, err := unmarshalModel(wire.Model)
	if err != nil {
		return err
	}
	out.Model = model
	for _, raw := range wire.Postprocessing {
		step, err := unmarshalPostprocess(raw)
		if err != nil {
			return err
		}
		out.Postprocess = append(out.Postprocess, step)
	}
	*c = out
	return nil
}

func marshalPreprocess(s PreprocessStep) (json.RawMessage, error) {
	switch st := s.(type) {
	case NormalizeStep:
		return json.Marshal(struct {
			Type string `json:"type"`
			NormalizeStep
		}{st.StepName(), st})
	case BandpassStep:
		return json.Marshal(struct {
			Type string `json:"type"`
			BandpassStep
		}{st.StepName(), st})
	case TimeWindowStep:
		return json.Marshal(struct {
			Type string `json:"type"`
			TimeWindowStep
		}{st.StepName(), st})
	case RemoveDCStep:
		return json.Marshal(typeTag{st.StepName()})
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownStep, s)
	}
}

func unmarshalPreprocess(raw json.RawMessage) (PreprocessStep, error) {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, core.NewConfigError("preprocessing step", err.Error())
	}
	switch tag.Type {
	case NormalizeStep{}.StepName():
		var st NormalizeStep
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return st, nil
	case BandpassStep{}.StepName():
		var st BandpassStep
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return st, nil
	case TimeWindowStep{}.StepName():
		var st TimeWindowStep
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return st, nil
	case RemoveDCStep{}.StepName():
		return RemoveDCStep{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownStep, tag.Type)
	}
}

func marshalPostprocess(s PostprocessStep) (json.RawMessage, error) {
	switch st := s.(type) {
	case NormalizeStep:
		return json.Marshal(struct {
			Type string `json:"type"`
			NormalizeStep
		}{st.StepName(), st})
	case ClipStep:
		return json.Marshal(struct {
			Type string `json:"type"`
			ClipStep
		}{st.StepName(), st})
	case DenoiseStep:
		return json.Marshal(typeTag{st.StepName()})
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownStep, s)
	}
}

func unmarshalPostprocess(raw json.RawMessage) (PostprocessStep, error) {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, core.NewConfigError("postprocessing step", err.Error())
	}
	switch tag.Type {
	case NormalizeStep{}.StepName():
		var st NormalizeStep
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return st, nil
	case ClipStep{}.StepName():
		var st ClipStep
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return st, nil
	case DenoiseStep{}.StepName():
		return DenoiseStep{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownStep, tag.Type)
	}
}

func marshalModel(m ModelSpec) (json.RawMessage, error) {
	switch ms := m.(type) {
	case MatrixCompletionModel:
		return json.Marshal(struct {
			Type string `json:"type"`
			MatrixCompletionModel
		}{ms.ModelName(), ms})
	case CompressiveSensingModel:
		return json.Marshal(struct {
			Type string `json:"type"`
			CompressiveSensingModel
		}{ms.ModelName(), ms})
	case WienerModel:
		return json.Marshal(struct {
			Type string `json:"type"`
			WienerModel
		}{ms.ModelName(), ms})
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownModel, m)
	}
}

func unmarshalModel(raw json.RawMessage) (ModelSpec, error) {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, core.NewConfigError("model", err.Error())
	}
	switch tag.Type {
	case MatrixCompletionModel{}.ModelName():
		var m MatrixCompletionModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case CompressiveSensingModel{}.ModelName():
		var m CompressiveSensingModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case WienerModel{}.ModelName():
		var m WienerModel
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownModel, tag.Type)
	}
}
