// Package timeline projects the flat record list into the grouped,
// filtered, sorted view consumed by the presentation layer. Projection is
// a pure function of its inputs; it never mutates the records.
package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/task"
)

// Order selects the per-bucket sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// Query holds the caller-controlled view state.
type Query struct {
	// Search is matched case-insensitively against name, technology,
	// email and phone. Empty matches everything.
	Search string
	// Types restricts output to the listed variants. Empty means all.
	Types []model.TaskType
	// SortOrder defaults to descending when unset.
	SortOrder Order
}

// Group is one non-empty task-type bucket of the projected view.
type Group struct {
	Type       model.TaskType    `json:"type"`
	Label      string            `json:"label"`
	Candidates []model.Candidate `json:"candidates"`
}

// Project filters, groups and sorts records. Buckets appear in the fixed
// variant order and empty buckets are omitted. Ties keep store order.
func Project(records []model.Candidate, q Query) []Group {
	byType := make(map[model.TaskType][]model.Candidate, len(model.AllTaskTypes()))
	for _, c := range records {
		if !matchesSearch(c, q.Search) || !matchesTypes(c.TaskType, q.Types) {
			continue
		}
		byType[c.TaskType] = append(byType[c.TaskType], c)
	}

	groups := make([]Group, 0, len(byType))
	for _, t := range model.AllTaskTypes() {
		bucket := byType[t]
		if len(bucket) == 0 {
			continue
		}
		sortBucket(bucket, q.SortOrder)
		groups = append(groups, Group{Type: t, Label: task.Label(t), Candidates: bucket})
	}
	return groups
}

func matchesSearch(c model.Candidate, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, hay := range []string{c.Name, c.Technology, c.Email, c.Phone} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func matchesTypes(t model.TaskType, types []model.TaskType) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

// sortKey resolves the instant a record sorts by within its bucket.
// Missing or malformed dates sort as the minimum possible instant.
func sortKey(c model.Candidate) time.Time {
	if task.SortsByCreation(c.TaskType) {
		return c.CreatedAt
	}
	t, ok := task.ParseWallClock(task.SortValue(c))
	if !ok {
		return time.Time{}
	}
	return t
}

func sortBucket(bucket []model.Candidate, order Order) {
	asc := order == Ascending
	sort.SliceStable(bucket, func(i, j int) bool {
		ti, tj := sortKey(bucket[i]), sortKey(bucket[j])
		if asc {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})
}
