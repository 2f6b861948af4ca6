package comment

import (
	"sort"

	"github.com/google/uuid"

	"kabar/internal/domain"
)

// BuildForest reconstructs the threaded view from a flat, chronologically
// ascending slice. Root comments come back newest first; replies within a
// parent keep submission order, which reads as a conversation.
//
// A reply whose parent is not part of the input (the parent is hidden by a
// status filter) is surfaced at the root rather than dropped.
func BuildForest(comments []domain.Comment) []domain.Comment {
	present := make(map[uuid.UUID]struct{}, len(comments))
	for _, c := range comments {
		present[c.ID] = struct{}{}
	}

	children := make(map[uuid.UUID][]domain.Comment)
	var roots []domain.Comment
	for _, c := range comments {
		switch {
		case c.ParentID == nil:
			roots = append(roots, c)
		default:
			if _, ok := present[*c.ParentID]; ok {
				children[*c.ParentID] = append(children[*c.ParentID], c)
			} else {
				roots = append(roots, c)
			}
		}
	}

	var attach func(c domain.Comment) domain.Comment
	attach = func(c domain.Comment) domain.Comment {
		for _, child := range children[c.ID] {
			c.Replies = append(c.Replies, attach(child))
		}
		return c
	}

	for i := range roots {
		roots[i] = attach(roots[i])
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	return roots
}
