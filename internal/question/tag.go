// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package question

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// TAG REFERENCE
// =============================================================================

// TagRef is a tag attached to a question. The backend stores tags either as
// bare strings or as {name, color} objects; both decode into a TagRef and are
// read through Name and Color only.
type TagRef struct {
	name  string
	color string
}

// Bare returns a tag reference without styling.
func Bare(name string) TagRef {
	return TagRef{name: name}
}

// Styled returns a tag reference carrying a display color.
func Styled(name, color string) TagRef {
	return TagRef{name: name, color: color}
}

// Name returns the tag name.
func (t TagRef) Name() string {
	return t.name
}

// Color returns the tag color, or "" for bare tags.
func (t TagRef) Color() string {
	return t.color
}

// IsStyled reports whether the tag was stored as an object.
func (t TagRef) IsStyled() bool {
	return t.color != ""
}

type styledTag struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// MarshalJSON writes bare tags as strings and styled tags as objects, so a
// round trip preserves the stored representation.
func (t TagRef) MarshalJSON() ([]byte, error) {
	if !t.IsStyled() {
		return json.Marshal(t.name)
	}
	return json.Marshal(styledTag{Name: t.name, Color: t.color})
}

// UnmarshalJSON accepts a string, an object with a name, or null.
func (t *TagRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = TagRef{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Bare(s)
		return nil
	}
	var obj styledTag
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("tag must be a string or {name, color} object: %w", err)
	}
	*t = Styled(obj.Name, obj.Color)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (t TagRef) MarshalYAML() (interface{}, error) {
	if !t.IsStyled() {
		return t.name, nil
	}
	return styledTag{Name: t.name, Color: t.color}, nil
}

// UnmarshalYAML accepts a scalar or a mapping node.
func (t *TagRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Bare(node.Value)
		return nil
	case yaml.MappingNode:
		var obj styledTag
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*t = Styled(obj.Name, obj.Color)
		return nil
	default:
		return fmt.Errorf("line %d: tag must be a string or {name, color} mapping", node.Line)
	}
}

// TagNames returns the names of refs in order.
func TagNames(refs []TagRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name())
	}
	return names
}
