// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package question

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecode_TagRepresentations(t *testing.T) {
	input := `[
		{"_id": "a1", "question": "What is React?", "tags": ["react"], "createdAt": "2024-01-01T10:00:00Z"},
		{"id": "b2", "question": "Hooks?", "tags": [{"name": "react", "color": "#fff"}], "createdAt": 1717200000000}
	]`

	qs, err := Decode(strings.NewReader(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	require.Equal(t, "a1", qs[0].ID)
	require.Equal(t, "react", qs[0].Tags[0].Name())
	require.False(t, qs[0].Tags[0].IsStyled())

	require.Equal(t, "b2", qs[1].ID)
	require.Equal(t, "react", qs[1].Tags[0].Name())
	require.Equal(t, "#fff", qs[1].Tags[0].Color())
	require.Equal(t, time.UnixMilli(1717200000000).UTC(), qs[1].CreatedAt)
}

func TestDecode_Envelope(t *testing.T) {
	qs, err := Decode(strings.NewReader(`{"questions": [{"question": "Q"}]}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.True(t, qs[0].CreatedAt.IsZero())
}

func TestDecode_YAML(t *testing.T) {
	input := `
- id: y1
  question: Explain CAP
  round: system-design
  tags:
    - distributed
    - name: databases
      color: "#0af"
  createdAt: 2024-06-01
`
	qs, err := Decode(strings.NewReader(input), FormatYAML)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Equal(t, []string{"distributed", "databases"}, qs[0].TagNames())
	require.Equal(t, "#0af", qs[0].Tags[1].Color())
	require.Equal(t, 2024, qs[0].CreatedAt.Year())
}

func TestDecode_Empty(t *testing.T) {
	qs, err := Decode(strings.NewReader("  "), FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, qs)
	require.Empty(t, qs)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("questions.csv")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","question":"Q"}]`), 0644))

	qs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, qs, 1)
}

func TestTagRef_JSONRoundTripKeepsShape(t *testing.T) {
	tags := []TagRef{Bare("go"), Styled("sql", "#123456")}
	data, err := json.Marshal(tags)
	require.NoError(t, err)
	require.JSONEq(t, `["go", {"name": "sql", "color": "#123456"}]`, string(data))
}

func TestIsEmptyValue(t *testing.T) {
	for _, v := range []string{"", " ", "Unnamed", "UNNAMED", "general", "undefined", "null"} {
		require.True(t, IsEmptyValue(v), "value %q", v)
	}
	for _, v := range []string{"hr", "technical", "unnamed-round"} {
		require.False(t, IsEmptyValue(v), "value %q", v)
	}
}

func TestDifficultyRank(t *testing.T) {
	require.Equal(t, 1, DifficultyRank("easy"))
	require.Equal(t, 2, DifficultyRank("medium"))
	require.Equal(t, 3, DifficultyRank("Hard"))
	require.Equal(t, 2, DifficultyRank(""))
	require.Equal(t, 2, DifficultyRank("extreme"))
}

func TestOmit_Idempotent(t *testing.T) {
	q := Question{Answer: "a", Code: "c", Favorite: true, Hot: true}
	q.Omit(FieldAnswer | FieldFlags)
	once := q
	q.Omit(FieldAnswer | FieldFlags)

	require.Equal(t, once, q)
	require.False(t, q.Has(FieldAnswer))
	require.True(t, q.Has(FieldCode))
	require.False(t, q.HasFlags())
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	q := Question{Tags: []TagRef{Bare("a")}, Images: []string{"data:image/png;base64,AA=="}}
	c := q.Clone()
	c.Tags[0] = Bare("b")
	c.Images[0] = ""

	require.Equal(t, "a", q.Tags[0].Name())
	require.NotEmpty(t, q.Images[0])
}

func TestMarshalJSON_LeavesOutOmitted(t *testing.T) {
	q := Question{ID: "x", Question: "Q", Answer: "A"}
	q.Omit(FieldAnswer)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	require.NotContains(t, string(data), `"answer"`)
}
