// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// FILTER
// =============================================================================

// Criteria restricts which questions are exported. Empty fields do not
// restrict anything.
type Criteria struct {
	SelectedIDs   []string
	IncludeTags   []string
	ExcludeTags   []string
	IncludeRounds []string
	ExcludeRounds []string
	SearchText    string
}

// Filter returns the questions matching every criterion, in input order.
//
// A question passes the tag check when no include tags are given or any of
// its tags is included; it fails when any of its tags is excluded. Rounds
// follow the same rules against the single round value. Tag, round and search
// comparisons are case-insensitive.
func Filter(qs []question.Question, c Criteria) []question.Question {
	fold := cases.Fold()
	set := func(values []string) map[string]bool {
		if len(values) == 0 {
			return nil
		}
		m := make(map[string]bool, len(values))
		for _, v := range values {
			m[fold.String(v)] = true
		}
		return m
	}

	includeTags := set(c.IncludeTags)
	excludeTags := set(c.ExcludeTags)
	includeRounds := set(c.IncludeRounds)
	excludeRounds := set(c.ExcludeRounds)
	search := fold.String(c.SearchText)

	out := make([]question.Question, 0, len(qs))
	for i := range qs {
		q := &qs[i]

		if !selected(q, c.SelectedIDs) {
			continue
		}

		if includeTags != nil || excludeTags != nil {
			matched := includeTags == nil
			excluded := false
			for _, name := range q.TagNames() {
				key := fold.String(name)
				if includeTags[key] {
					matched = true
				}
				if excludeTags[key] {
					excluded = true
				}
			}
			if !matched || excluded {
				continue
			}
		}

		round := fold.String(q.Round)
		if includeRounds != nil && !includeRounds[round] {
			continue
		}
		if excludeRounds[round] {
			continue
		}

		if search != "" && !strings.Contains(fold.String(searchText(q)), search) {
			continue
		}

		out = append(out, *q)
	}
	return out
}

// SelectByID keeps the questions whose ID is in ids, in input order. An empty
// id list keeps everything.
func SelectByID(qs []question.Question, ids []string) []question.Question {
	if len(ids) == 0 {
		return qs
	}
	out := make([]question.Question, 0, len(qs))
	for i := range qs {
		if selected(&qs[i], ids) {
			out = append(out, qs[i])
		}
	}
	return out
}

func selected(q *question.Question, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == q.ID {
			return true
		}
	}
	return false
}

// searchText is the haystack for free-text search.
func searchText(q *question.Question) string {
	return strings.Join([]string{
		q.Question,
		q.Answer,
		q.Code,
		strings.Join(q.TagNames(), " "),
		q.Company,
		q.Position,
	}, " ")
}
