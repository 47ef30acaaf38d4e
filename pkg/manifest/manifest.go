// Package manifest loads workspace declarations from TOML or JSON files.
//
// A manifest is the declarative input to the layout engine: a set of
// workspaces, each with regions, plus an optional persona the plans should
// be biased toward. Validation happens at the load boundary so everything
// past this package can assume well-formed declarations.
//
//	m, err := manifest.Load("dazzle.toml")
//	plans, err := runner.PlanAll(ctx, m.WorkspaceRefs(), opts)
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/manwithacat/dazzle-sub005/pkg/errors"
	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

// Manifest is a parsed and validated workspace declaration file.
type Manifest struct {
	// Persona optionally biases attention weights for every workspace in
	// the manifest.
	Persona *layout.Persona `json:"persona,omitempty" toml:"persona"`

	Workspaces []layout.Workspace `json:"workspaces" toml:"workspace"`
}

// Load reads and validates a manifest file. The format is chosen by file
// extension: .toml or .json.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported manifest format %q (expected .toml or .json)", filepath.Ext(path))
	}
}

// ParseTOML parses and validates a TOML manifest.
func ParseTOML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse TOML manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseJSON parses and validates a JSON manifest.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse JSON manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest as a whole. Unknown engine hints are rejected
// here, at the boundary, so a typoed hint fails the load instead of being
// silently ignored downstream.
func (m *Manifest) Validate() error {
	if len(m.Workspaces) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest declares no workspaces")
	}

	seen := make(map[string]bool, len(m.Workspaces))
	for i := range m.Workspaces {
		ws := &m.Workspaces[i]
		if seen[ws.ID] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate workspace %q", ws.ID)
		}
		seen[ws.ID] = true

		if ws.EngineHint != "" {
			if _, err := layout.ParseArchetype(ws.EngineHint); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidHint, err, "workspace %q", ws.ID)
			}
		}
		if err := ws.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "workspace %q", ws.ID)
		}
	}

	if m.Persona != nil && m.Persona.ID == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "persona requires an id")
	}
	return nil
}

// WorkspaceRefs returns pointers into the manifest's workspace slice, in
// declaration order, for handing to the pipeline.
func (m *Manifest) WorkspaceRefs() []*layout.Workspace {
	refs := make([]*layout.Workspace, len(m.Workspaces))
	for i := range m.Workspaces {
		refs[i] = &m.Workspaces[i]
	}
	return refs
}

// Workspace returns the workspace with the given ID.
func (m *Manifest) Workspace(id string) (*layout.Workspace, error) {
	for i := range m.Workspaces {
		if m.Workspaces[i].ID == id {
			return &m.Workspaces[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeWorkspaceNotFound, "workspace %q not in manifest", id)
}

// String summarizes the manifest for log output.
func (m *Manifest) String() string {
	persona := "none"
	if m.Persona != nil {
		persona = m.Persona.ID
	}
	return fmt.Sprintf("manifest{workspaces: %d, persona: %s}", len(m.Workspaces), persona)
}
