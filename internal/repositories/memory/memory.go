// Package memory provides in-memory implementations of the repository
// interfaces for tests and local tooling. Matching, ordering and the
// duplicate-key backstop mirror the mongodb package: substring matches are
// case-insensitive, listings sort newest-created first, and unique-index
// violations surface as driver-shaped duplicate key errors.
package memory

import (
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// duplicateKeyError fabricates the error shape the mongo driver produces for
// a unique index violation, so mongo.IsDuplicateKeyError recognizes it.
func duplicateKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{
				Code:    11000,
				Message: fmt.Sprintf("E11000 duplicate key error: index: %s dup key", index),
			},
		},
	}
}

type sequenced interface {
	seqNo() int64
}

// sortNewestFirst orders by creation sequence descending. The sequence stands
// in for createdAt so rows inserted within the same wall-clock tick still have
// a stable total order.
func sortNewestFirst[T sequenced](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].seqNo() > items[j].seqNo()
	})
}

func paginate[T any](items []T, page, limit int, all bool) []T {
	if all {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
