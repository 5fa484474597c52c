// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// SORT
// =============================================================================

// DefaultLocale is used for alphabetical ordering when none is configured.
const DefaultLocale = "en"

// Sort returns a copy of qs ordered by sortBy. Unknown or empty orders keep
// the input order. The sort is stable, so ties keep their relative order.
func Sort(qs []question.Question, sortBy, locale string) []question.Question {
	out := append([]question.Question(nil), qs...)
	if out == nil {
		out = []question.Question{}
	}

	var less func(a, b *question.Question) bool
	switch sortBy {
	case SortNewest:
		less = func(a, b *question.Question) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		less = func(a, b *question.Question) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortAlphabetical:
		coll := collator(locale)
		less = func(a, b *question.Question) bool {
			return coll.CompareString(a.Question, b.Question) < 0
		}
	case SortDifficulty:
		less = func(a, b *question.Question) bool {
			return question.DifficultyRank(a.Difficulty) < question.DifficultyRank(b.Difficulty)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func collator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Make(DefaultLocale)
	}
	return collate.New(tag, collate.IgnoreCase)
}

// =============================================================================
// GROUP
// =============================================================================

// Group is a labelled run of questions.
type Group struct {
	Key       string
	Questions []question.Question
}

// groupFallback labels questions with no value for the grouping key.
const groupFallback = "Other"

// allGroup is the key of the single group produced without grouping.
const allGroup = "All"

// GroupBy partitions qs by key. Groups appear in first-seen order and each
// keeps the input order of its members. Without a recognised key the result
// is a single "All" group.
func GroupBy(qs []question.Question, key string) []Group {
	if !isGroupKey(key) {
		return []Group{{Key: allGroup, Questions: qs}}
	}

	index := make(map[string]int)
	var groups []Group
	for _, q := range qs {
		k := groupKey(&q, key)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups
}

func groupKey(q *question.Question, key string) string {
	var v string
	switch key {
	case GroupRound:
		v = q.Round
	case GroupTag:
		v = q.FirstTag()
	case GroupSubject:
		v = q.Subject
	case GroupDifficulty:
		v = q.Difficulty
	}
	if v == "" {
		return groupFallback
	}
	return v
}

// SortAndGroup sorts qs, then groups the sorted list.
func SortAndGroup(qs []question.Question, sortBy, groupBy, locale string) []Group {
	return GroupBy(Sort(qs, sortBy, locale), groupBy)
}
