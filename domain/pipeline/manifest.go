package pipeline

import (
	"fmt"

	"seisrec/domain/core"
)

// RunManifest pins a run to the exact inputs that produced it: the
// configuration hash, the dataset fingerprint and, for completion
// runs, the mask fingerprint. Two runs with equal manifests must
// produce numerically identical outputs, which is what makes archived
// reports comparable across machines and code revisions.
type RunManifest struct {
	RunID       core.RunID      `json:"run_id"`
	Pipeline    string          `json:"pipeline"`
	ConfigHash  core.ConfigHash `json:"config_hash"`
	DataHash    core.DataHash   `json:"data_hash"`
	MaskHash    core.DataHash   `json:"mask_hash,omitempty"`
	CodeVersion string          `json:"code_version"`
	Fingerprint core.Hash       `json:"fingerprint"`
	CreatedAt   core.Timestamp  `json:"created_at"`
}

// NewRunManifest assembles a manifest and computes its determinism
// fingerprint. An empty maskHash means the run had no mask.
func NewRunManifest(pipelineName string, configHash core.ConfigHash, dataHash, maskHash core.DataHash) *RunManifest {
	return &RunManifest{
		RunID:       core.NewRunID(),
		Pipeline:    pipelineName,
		ConfigHash:  configHash,
		DataHash:    dataHash,
		MaskHash:    maskHash,
		CodeVersion: core.Version,
		Fingerprint: computeRunFingerprint(pipelineName, configHash, dataHash, maskHash, core.Version),
		CreatedAt:   core.Now(),
	}
}

// computeRunFingerprint hashes every determinism input. RunID and
// CreatedAt vary per run and stay out of it: the fingerprint answers
// "same computation?", not "same invocation?".
func computeRunFingerprint(pipelineName string, configHash core.ConfigHash, dataHash, maskHash core.DataHash, codeVersion string) core.Hash {
	data := fmt.Sprintf("pipeline:%s|config:%s|data:%s|mask:%s|code:%s",
		pipelineName, configHash, dataHash, maskHash, codeVersion)
	return core.NewHash([]byte(data))
}

// Validate checks if the manifest is complete
func (m *RunManifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewConfigError("run manifest", "run_id cannot be empty")
	}
	if m.ConfigHash == "" {
		return core.NewConfigError("run manifest", "config_hash cannot be empty")
	}
	if m.DataHash == "" {
		return core.NewConfigError("run manifest", "data_hash cannot be empty")
	}
	if m.CodeVersion == "" {
		return core.NewConfigError("run manifest", "code_version cannot be empty")
	}
	return nil
}
