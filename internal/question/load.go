// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a question file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported question file format")

// FormatForPath picks the decoder from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads every question in the file at path.
func Load(path string) ([]Question, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()

	qs, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return qs, nil
}

// envelope is the list response of the notes API.
type envelope struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// Decode reads a question array, or an object holding one under
// "questions", from r.
func Decode(r io.Reader, format Format) ([]Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Question{}, nil
	}

	switch format {
	case FormatJSON:
		if data[0] == '{' {
			var env envelope
			if err := json.Unmarshal(data, &env); err != nil {
				return nil, err
			}
			return nonNil(env.Questions), nil
		}
		var qs []Question
		if err := json.Unmarshal(data, &qs); err != nil {
			return nil, err
		}
		return nonNil(qs), nil

	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
			var env envelope
			if err := node.Decode(&env); err != nil {
				return nil, err
			}
			return nonNil(env.Questions), nil
		}
		var qs []Question
		if err := node.Decode(&qs); err != nil {
			return nil, err
		}
		return nonNil(qs), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
