package domain

import (
	"time"

	"github.com/google/uuid"
)

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
	CommentSpam     CommentStatus = "spam"
)

func (s CommentStatus) IsValid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected, CommentSpam:
		return true
	default:
		return false
	}
}

// IsModerationTarget reports whether s may be assigned through a moderation
// transition. Pending is only ever an initial state; deletion is not a status.
func (s CommentStatus) IsModerationTarget() bool {
	switch s {
	case CommentApproved, CommentRejected, CommentSpam:
		return true
	default:
		return false
	}
}

func AllCommentStatuses() []CommentStatus {
	return []CommentStatus{CommentPending, CommentApproved, CommentRejected, CommentSpam}
}

// RegisteredAuthor identifies a comment written by a logged-in user.
// FullName is a read-time projection joined from the users table.
type RegisteredAuthor struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name,omitempty"`
}

// GuestAuthor identifies an anonymous visitor. Name and Email are required at
// submission time, Website is optional.
type GuestAuthor struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Website *string `json:"website,omitempty"`
}

// CommentAuthor is a tagged union: exactly one of the two variants is set.
type CommentAuthor struct {
	Registered *RegisteredAuthor `json:"registered,omitempty"`
	Guest      *GuestAuthor      `json:"guest,omitempty"`
}

func (a CommentAuthor) IsRegistered() bool {
	return a.Registered != nil
}

// Valid reports whether exactly one variant is populated.
func (a CommentAuthor) Valid() bool {
	return (a.Registered != nil) != (a.Guest != nil)
}

type Comment struct {
	ID          uuid.UUID     `json:"id" db:"comment_id"`
	PostID      uuid.UUID     `json:"post_id" db:"post_id"`
	ParentID    *uuid.UUID    `json:"parent_id" db:"parent_id"`
	Author      CommentAuthor `json:"author" db:"-"`
	Content     string        `json:"content" db:"content"`
	Status      CommentStatus `json:"status" db:"status"`
	ModeratedBy *uuid.UUID    `json:"moderated_by,omitempty" db:"moderated_by"`
	ModeratedAt *time.Time    `json:"moderated_at,omitempty" db:"moderated_at"`
	IPAddress   *string       `json:"-" db:"ip_address"`
	UserAgent   *string       `json:"-" db:"user_agent"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`

	Replies []Comment `json:"replies,omitempty" db:"-"`
}

const (
	CommentContentMinLen = 1
	CommentContentMaxLen = 1000
)

type CreateCommentInput struct {
	PostID  uuid.UUID `json:"post_id"`
	Content string    `json:"content"`

	// Guest identity, required when the request carries no principal.
	AuthorName    string  `json:"author_name"`
	AuthorEmail   string  `json:"author_email"`
	AuthorWebsite *string `json:"author_website"`

	// Challenge proof for anonymous submissions: either a previously issued
	// one-time token, or a challenge session id plus the text solution.
	CaptchaToken     string `json:"captcha_token"`
	CaptchaSessionID string `json:"captcha_session_id"`
	CaptchaAnswer    string `json:"captcha_answer"`

	// Bypass token for non-production automated tests.
	CaptchaBypass string `json:"captcha_bypass"`
}

type ReplyCommentInput struct {
	Content string `json:"content"`
}

type UpdateCommentStatusInput struct {
	Status CommentStatus `json:"status"`
}

type BulkCommentAction string

const (
	BulkApprove BulkCommentAction = "approve"
	BulkReject  BulkCommentAction = "reject"
	BulkSpam    BulkCommentAction = "spam"
	BulkDelete  BulkCommentAction = "delete"
)

func (a BulkCommentAction) IsValid() bool {
	switch a {
	case BulkApprove, BulkReject, BulkSpam, BulkDelete:
		return true
	default:
		return false
	}
}

// TargetStatus maps a status action to the status it assigns. Only meaningful
// for the three non-delete actions.
func (a BulkCommentAction) TargetStatus() (CommentStatus, bool) {
	switch a {
	case BulkApprove:
		return CommentApproved, true
	case BulkReject:
		return CommentRejected, true
	case BulkSpam:
		return CommentSpam, true
	default:
		return "", false
	}
}

type BulkCommentActionInput struct {
	CommentIDs []uuid.UUID       `json:"comment_ids"`
	Action     BulkCommentAction `json:"action"`
}

type BulkActionSummary struct {
	Action        BulkCommentAction `json:"action"`
	RequestedIDs  int               `json:"requested_ids"`
	AffectedCount int64             `json:"affected_count"`
}

type CommentStats struct {
	Total        int64                   `json:"total"`
	Last24Hours  int64                   `json:"last_24_hours"`
	CountsByType map[CommentStatus]int64 `json:"by_status"`
}

// CommentFilter narrows the flat moderation listing.
type CommentFilter struct {
	PostID    *uuid.UUID
	Status    *CommentStatus
	Search    string
	SortBy    string
	SortOrder string
}

// ClientInfo is captured on every write for abuse forensics.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}
