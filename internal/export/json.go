// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// JSON RENDERER
// =============================================================================

// JSONRenderer writes the transformed questions back out in the backend
// wire shape, so an export can be re-imported.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonGroup struct {
	Group     string              `json:"group"`
	Questions []question.Question `json:"questions"`
}

type jsonDocument struct {
	Title      string              `json:"title"`
	ExportedAt time.Time           `json:"exportedAt"`
	Count      int                 `json:"count"`
	Questions  []question.Question `json:"questions,omitempty"`
	Groups     []jsonGroup         `json:"groups,omitempty"`
}

// Render converts doc to indented JSON. Grouped documents nest questions
// under their group key.
func (r *JSONRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	out := jsonDocument{
		Title:      doc.Title,
		ExportedAt: doc.ExportedAt,
		Count:      doc.Count(),
	}
	if doc.Grouped {
		for _, g := range doc.Groups {
			out.Groups = append(out.Groups, jsonGroup{Group: g.Key, Questions: g.Questions})
		}
	} else {
		out.Questions = doc.Questions()
	}

	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (r *JSONRenderer) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (r *JSONRenderer) MimeType() string {
	return "application/json"
}
