// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"time"

	"github.com/dlclark/regexp2"
	"github.com/sirupsen/logrus"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/util"
)

// patternTimeout bounds a single user pattern replacement.
const patternTimeout = 2 * time.Second

// TransformOptions controls field projection and text redaction.
type TransformOptions struct {
	Include        Include
	RemovePatterns []string
	RemoveBlocks   []Block
}

// Transformer applies TransformOptions to questions. Patterns are compiled
// once; sources that fail to compile are dropped.
type Transformer struct {
	omit     question.Field
	blocks   []*regexp2.Regexp
	patterns []*regexp2.Regexp
	log      logrus.FieldLogger
}

// NewTransformer compiles opts. Removal patterns use JavaScript regular
// expression syntax, since they are authored in the web client.
func NewTransformer(opts TransformOptions, log logrus.FieldLogger) *Transformer {
	if log == nil {
		log = discardLogger()
	}
	t := &Transformer{omit: opts.Include.Omitted(), log: log}

	for _, b := range opts.RemoveBlocks {
		if b.Start == "" || b.End == "" {
			continue
		}
		src := regexp2.Escape(b.Start) + `[\s\S]*?` + regexp2.Escape(b.End)
		re, err := regexp2.Compile(src, regexp2.ECMAScript)
		if err != nil {
			log.WithError(err).WithField("start", util.TruncateRunes(b.Start, 40)).Debug("skipping remove block")
			continue
		}
		re.MatchTimeout = patternTimeout
		t.blocks = append(t.blocks, re)
	}

	for _, p := range opts.RemovePatterns {
		if p == "" {
			continue
		}
		re, err := regexp2.Compile(p, regexp2.ECMAScript)
		if err != nil {
			log.WithError(err).WithField("pattern", util.TruncateRunes(p, 80)).Debug("skipping invalid remove pattern")
			continue
		}
		re.MatchTimeout = patternTimeout
		t.patterns = append(t.patterns, re)
	}
	return t
}

// Apply returns a transformed copy of q. q itself is not modified.
func (t *Transformer) Apply(q question.Question) question.Question {
	out := q.Clone()
	if t.omit != 0 {
		out.Omit(t.omit)
	}
	out.Answer = t.redact(out.Answer)
	out.Code = t.redact(out.Code)
	out.Notes = t.redact(out.Notes)
	return out
}

// redact removes delimited blocks, then pattern matches. A pattern that
// fails at match time leaves the text as it was before that pattern.
func (t *Transformer) redact(s string) string {
	if s == "" {
		return s
	}
	for _, re := range t.blocks {
		s = t.replace(re, s)
	}
	for _, re := range t.patterns {
		s = t.replace(re, s)
	}
	return s
}

func (t *Transformer) replace(re *regexp2.Regexp, s string) string {
	out, err := re.Replace(s, "", -1, -1)
	if err != nil {
		t.log.WithError(err).WithField("pattern", re.String()).Debug("pattern replacement failed")
		return s
	}
	return out
}

// Transform applies opts to a single question.
func Transform(q question.Question, opts TransformOptions) question.Question {
	return NewTransformer(opts, nil).Apply(q)
}
