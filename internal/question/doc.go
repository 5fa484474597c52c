// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package question defines the interview question record consumed by the
// export pipeline.
//
// Questions are owned by the notes backend; this package only reads them.
// Records arrive as JSON (the REST API shape) or YAML and are decoded into
// Question values that the pipeline treats as immutable.
//
// # Key Types
//
//   - Question: a single question/answer note with classification and flags
//   - TagRef: a tag reference, either a bare name or a styled {name, color}
//   - Field: bit flags naming the optional parts of a Question
//
// # Usage
//
//	qs, err := question.Load("questions.json")
//	for _, q := range qs {
//	    fmt.Println(q.Question, q.TagNames())
//	}
//
// Metadata values such as "unnamed" or "general" carry no meaning and are
// suppressed by renderers; use IsEmptyValue to test for them.
package question
