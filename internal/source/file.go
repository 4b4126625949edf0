// Package source provides catalog sources backed by a local seed file and a
// remote JSON endpoint.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rpggio/propcatalog/internal/domain/project"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a payload can't be decoded into projects.
var ErrMalformed = errors.New("malformed catalog payload")

// Document is the wrapped payload shape shared by seed files and the remote
// endpoint. A bare list of projects is accepted as well.
type Document struct {
	Projects []project.Project `json:"projects" yaml:"projects"`
}

// File reads the catalog from a YAML (or JSON) seed file on every fetch.
type File struct {
	Path string
}

// NewFile creates a file-backed source.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Fetch implements catalog.Source.
func (f *File) Fetch(ctx context.Context) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(f.Path)
}

// LoadFile reads and decodes a seed file.
func LoadFile(path string) ([]project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	projects, err := DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return projects, nil
}

// DecodeYAML decodes either a Document or a bare list of projects.
func DecodeYAML(data []byte) ([]project.Project, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []project.Project{}, nil
	}

	if trimmed[0] == '[' || trimmed[0] == '-' {
		var list []project.Project
		if err := yaml.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nonNil(list), nil
	}

	var doc Document
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nonNil(doc.Projects), nil
}

func nonNil(list []project.Project) []project.Project {
	if list == nil {
		return []project.Project{}
	}
	return list
}
