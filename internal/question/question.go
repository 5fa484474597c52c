// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// FIELDS
// =============================================================================

// Field names an optional part of a Question that an export may drop.
type Field uint16

const (
	FieldAnswer Field = 1 << iota
	FieldCode
	FieldTags
	FieldImages
	FieldRound
	FieldSubject
	FieldDate
	FieldFlags
	FieldNotes
)

// =============================================================================
// QUESTION
// =============================================================================

// Question is a single interview note.
type Question struct {
	ID           string
	Question     string
	Answer       string
	Code         string
	CodeLanguage string
	Notes        string
	Company      string
	Position     string
	Tags         []TagRef
	Images       []string
	Round        string
	Subject      string
	Difficulty   string
	Favorite     bool
	Review       bool
	Hot          bool
	CreatedAt    time.Time

	// Omitted records fields removed by a transform. The zero value means
	// every field is present.
	Omitted Field
}

// Has reports whether f is still present on q.
func (q *Question) Has(f Field) bool {
	return q.Omitted&f == 0
}

// Omit clears the given fields and marks them absent. Omitting an already
// absent field is a no-op.
func (q *Question) Omit(f Field) {
	if f&FieldAnswer != 0 {
		q.Answer = ""
	}
	if f&FieldCode != 0 {
		q.Code = ""
		q.CodeLanguage = ""
	}
	if f&FieldTags != 0 {
		q.Tags = nil
	}
	if f&FieldImages != 0 {
		q.Images = nil
	}
	if f&FieldRound != 0 {
		q.Round = ""
	}
	if f&FieldSubject != 0 {
		q.Subject = ""
	}
	if f&FieldDate != 0 {
		q.CreatedAt = time.Time{}
	}
	if f&FieldFlags != 0 {
		q.Favorite = false
		q.Review = false
		q.Hot = false
	}
	if f&FieldNotes != 0 {
		q.Notes = ""
	}
	q.Omitted |= f
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	if q.Tags != nil {
		c.Tags = append([]TagRef(nil), q.Tags...)
	}
	if q.Images != nil {
		c.Images = append([]string(nil), q.Images...)
	}
	return c
}

// TagNames returns the names of the question's tags.
func (q *Question) TagNames() []string {
	return TagNames(q.Tags)
}

// FirstTag returns the name of the first tag, or "" when untagged.
func (q *Question) FirstTag() string {
	if len(q.Tags) == 0 {
		return ""
	}
	return q.Tags[0].Name()
}

// HasFlags reports whether any of favorite, review or hot is set.
func (q *Question) HasFlags() bool {
	return q.Favorite || q.Review || q.Hot
}

// =============================================================================
// SENTINELS AND RANKS
// =============================================================================

var emptyValues = map[string]bool{
	"":          true,
	"general":   true,
	"undefined": true,
	"null":      true,
	"unnamed":   true,
}

// IsEmptyValue reports whether a round/subject value carries no meaning and
// should not be displayed.
func IsEmptyValue(s string) bool {
	return emptyValues[strings.ToLower(strings.TrimSpace(s))]
}

// DifficultyRank maps easy/medium/hard to 1/2/3. Unknown and missing values
// rank as medium.
func DifficultyRank(d string) int {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return 1
	case "hard":
		return 3
	default:
		return 2
	}
}

// =============================================================================
// DECODING
// =============================================================================

// wireQuestion is the backend representation of a question.
type wireQuestion struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	MongoID      string   `json:"_id,omitempty" yaml:"_id,omitempty"`
	Question     string   `json:"question" yaml:"question"`
	Answer       string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Code         string   `json:"code,omitempty" yaml:"code,omitempty"`
	CodeLanguage string   `json:"codeLanguage,omitempty" yaml:"codeLanguage,omitempty"`
	Notes        string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Company      string   `json:"company,omitempty" yaml:"company,omitempty"`
	Position     string   `json:"position,omitempty" yaml:"position,omitempty"`
	Tags         []TagRef `json:"tags,omitempty" yaml:"tags,omitempty"`
	Images       []string `json:"images,omitempty" yaml:"images,omitempty"`
	Round        string   `json:"round,omitempty" yaml:"round,omitempty"`
	Subject      string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Favorite     bool     `json:"favorite,omitempty" yaml:"favorite,omitempty"`
	Review       bool     `json:"review,omitempty" yaml:"review,omitempty"`
	Hot          bool     `json:"hot,omitempty" yaml:"hot,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

func (w *wireQuestion) toQuestion() (Question, error) {
	created, err := ParseTime(w.CreatedAt)
	if err != nil {
		return Question{}, err
	}
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	return Question{
		ID:           id,
		Question:     w.Question,
		Answer:       w.Answer,
		Code:         w.Code,
		CodeLanguage: w.CodeLanguage,
		Notes:        w.Notes,
		Company:      w.Company,
		Position:     w.Position,
		Tags:         w.Tags,
		Images:       w.Images,
		Round:        w.Round,
		Subject:      w.Subject,
		Difficulty:   w.Difficulty,
		Favorite:     w.Favorite,
		Review:       w.Review,
		Hot:          w.Hot,
		CreatedAt:    created,
	}, nil
}

func fromQuestion(q *Question) wireQuestion {
	w := wireQuestion{
		ID:           q.ID,
		Question:     q.Question,
		Answer:       q.Answer,
		Code:         q.Code,
		CodeLanguage: q.CodeLanguage,
		Notes:        q.Notes,
		Company:      q.Company,
		Position:     q.Position,
		Tags:         q.Tags,
		Images:       q.Images,
		Round:        q.Round,
		Subject:      q.Subject,
		Difficulty:   q.Difficulty,
		Favorite:     q.Favorite,
		Review:       q.Review,
		Hot:          q.Hot,
	}
	if !q.CreatedAt.IsZero() {
		w.CreatedAt = q.CreatedAt.UTC().Format(time.RFC3339)
	}
	return w
}

// UnmarshalJSON decodes the backend JSON shape. createdAt may be a string or
// epoch milliseconds.
func (q *Question) UnmarshalJSON(data []byte) error {
	type alias wireQuestion
	var raw struct {
		alias
		CreatedAt json.RawMessage `json:"createdAt,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w := wireQuestion(raw.alias)
	w.CreatedAt = rawTime(raw.CreatedAt)
	decoded, err := w.toQuestion()
	if err != nil {
		return err
	}
	*q = decoded
	return nil
}

// MarshalJSON encodes q in the backend shape, leaving out omitted fields.
func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(fromQuestion(&q))
}

// UnmarshalYAML decodes the same shape from YAML.
func (q *Question) UnmarshalYAML(node *yaml.Node) error {
	var w wireQuestion
	if err := node.Decode(&w); err != nil {
		return err
	}
	decoded, err := w.toQuestion()
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*q = decoded
	return nil
}

// MarshalYAML encodes q in the backend shape.
func (q Question) MarshalYAML() (interface{}, error) {
	return fromQuestion(&q), nil
}

func rawTime(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses RFC3339 timestamps, plain dates, and epoch milliseconds.
// An empty string yields the zero time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid createdAt %q", s)
}
