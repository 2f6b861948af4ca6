package comment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kabar/internal/domain"
	"kabar/internal/service/comment"
)

func flatComment(id uuid.UUID, parent *uuid.UUID, createdAt time.Time) domain.Comment {
	return domain.Comment{
		ID:        id,
		ParentID:  parent,
		Status:    domain.CommentApproved,
		CreatedAt: createdAt,
	}
}

func TestBuildForest(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Roots Newest First, Replies In Order", func(t *testing.T) {
		oldRoot := uuid.New()
		newRoot := uuid.New()
		replyA := uuid.New()
		replyB := uuid.New()

		forest := comment.BuildForest([]domain.Comment{
			flatComment(oldRoot, nil, base),
			flatComment(replyA, &oldRoot, base.Add(1*time.Minute)),
			flatComment(replyB, &oldRoot, base.Add(2*time.Minute)),
			flatComment(newRoot, nil, base.Add(3*time.Minute)),
		})

		require.Len(t, forest, 2)
		assert.Equal(t, newRoot, forest[0].ID)
		assert.Equal(t, oldRoot, forest[1].ID)
		require.Len(t, forest[1].Replies, 2)
		assert.Equal(t, replyA, forest[1].Replies[0].ID)
		assert.Equal(t, replyB, forest[1].Replies[1].ID)
	})

	t.Run("Nested Replies", func(t *testing.T) {
		root := uuid.New()
		child := uuid.New()
		grandchild := uuid.New()

		forest := comment.BuildForest([]domain.Comment{
			flatComment(root, nil, base),
			flatComment(child, &root, base.Add(time.Minute)),
			flatComment(grandchild, &child, base.Add(2*time.Minute)),
		})

		require.Len(t, forest, 1)
		require.Len(t, forest[0].Replies, 1)
		require.Len(t, forest[0].Replies[0].Replies, 1)
		assert.Equal(t, grandchild, forest[0].Replies[0].Replies[0].ID)
	})

	t.Run("Orphan Promoted To Root", func(t *testing.T) {
		hiddenParent := uuid.New()
		orphan := uuid.New()

		forest := comment.BuildForest([]domain.Comment{
			flatComment(orphan, &hiddenParent, base),
		})

		require.Len(t, forest, 1)
		assert.Equal(t, orphan, forest[0].ID)
	})

	t.Run("Empty Input", func(t *testing.T) {
		assert.Empty(t, comment.BuildForest(nil))
	})
}
