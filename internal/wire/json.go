// Package wire handles workflow serialization: the canonical JSON
// interchange format produced by the canvas editor, plus an HCL definition
// format for hand-authored workflows. Import dispatches on file extension;
// export always writes JSON.
package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/validate"
)

// Export serializes the workflow as indented JSON at path.
func Export(wf model.Workflow, path string) error {
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing workflow %q: %w", wf.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing workflow to %s: %w", path, err)
	}
	return nil
}

// Import reads a workflow definition from path, dispatching on extension:
// .json for the canvas interchange format, .hcl for hand-authored
// definitions. The decoded workflow passes structural field checks before
// being returned; graph-level validation stays the validator's job.
func Import(path string) (model.Workflow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return model.Workflow{}, fmt.Errorf("opening workflow file: %w", err)
		}
		defer f.Close()
		return DecodeJSON(f)
	case ".hcl":
		return DecodeHCLFile(path)
	}
	return model.Workflow{}, fmt.Errorf("unsupported workflow file extension on %s (want .json or .hcl)", path)
}

// DecodeJSON decodes a workflow from the canvas JSON format.
func DecodeJSON(r io.Reader) (model.Workflow, error) {
	var wf model.Workflow
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wf); err != nil {
		return model.Workflow{}, fmt.Errorf("decoding workflow JSON: %w", err)
	}
	if err := validate.CheckStructure(wf); err != nil {
		return model.Workflow{}, err
	}
	return wf, nil
}
