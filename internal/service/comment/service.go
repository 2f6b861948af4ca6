package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/mail"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"kabar/internal/config"
	"kabar/internal/domain"
	"kabar/internal/repository"
	"kabar/internal/service/captcha"
	"kabar/internal/service/email"
)

// RateLimiter is the submission throttle applied to the anonymous write path.
type RateLimiter interface {
	Allow(key string) bool
}

// ContentChecker is the XSS-safety gate comment bodies must pass.
type ContentChecker interface {
	IsSafe(text string) bool
}

type Service interface {
	Create(ctx context.Context, input domain.CreateCommentInput, principal *domain.User, client domain.ClientInfo) (*domain.Comment, error)
	Reply(ctx context.Context, parentID uuid.UUID, input domain.ReplyCommentInput, principal *domain.User, client domain.ClientInfo) (*domain.Comment, error)
	GetTree(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
	ListForModeration(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.CommentStatus, moderator *domain.User) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkAction(ctx context.Context, input domain.BulkCommentActionInput, moderator *domain.User) (*domain.BulkActionSummary, error)
	Stats(ctx context.Context) (*domain.CommentStats, error)
}

type service struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	captchaSvc  captcha.Service
	limiter     RateLimiter
	checker     ContentChecker
	emailSvc    email.Service
	redis       *redis.Client
	cfg         *config.Config
}

func NewService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	captchaSvc captcha.Service,
	limiter RateLimiter,
	checker ContentChecker,
	emailSvc email.Service,
	redisClient *redis.Client,
	cfg *config.Config,
) Service {
	return &service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		captchaSvc:  captchaSvc,
		limiter:     limiter,
		checker:     checker,
		emailSvc:    emailSvc,
		redis:       redisClient,
		cfg:         cfg,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateCommentInput, principal *domain.User, client domain.ClientInfo) (*domain.Comment, error) {
	if err := s.validateContent(input.Content); err != nil {
		return nil, err
	}

	if principal == nil && s.cfg.ThrottleEnabled {
		if !s.limiter.Allow(client.IPAddress) {
			return nil, fmt.Errorf("%w: comment rate exceeded, retry later", domain.ErrRateLimited)
		}
	}

	if s.captchaSvc.Required(principal, input.CaptchaBypass) {
		if input.CaptchaToken != "" {
			if err := s.captchaSvc.VerifyToken(ctx, input.CaptchaToken); err != nil {
				return nil, err
			}
		} else {
			if _, err := s.captchaSvc.Verify(ctx, input.CaptchaSessionID, input.CaptchaAnswer); err != nil {
				return nil, err
			}
		}
	}

	author, status, err := resolveAuthor(principal, input)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublic() {
		return nil, fmt.Errorf("%w: post does not exist", domain.ErrNotFound)
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		PostID:  input.PostID,
		Author:  author,
		Content: input.Content,
		Status:  status,
	}
	if client.IPAddress != "" {
		comment.IPAddress = &client.IPAddress
	}
	if client.UserAgent != "" {
		comment.UserAgent = &client.UserAgent
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx, comment.PostID)

	if comment.Status == domain.CommentPending && s.emailSvc != nil {
		authorName := ""
		if comment.Author.Guest != nil {
			authorName = comment.Author.Guest.Name
		}
		go func(title, name, excerpt string) {
			if err := s.emailSvc.SendModerationAlert(context.Background(), title, name, excerpt); err != nil {
				log.Printf("Failed to send moderation alert: %v", err)
			}
		}(post.Title, authorName, truncate(comment.Content, 200))
	}

	return comment, nil
}

func (s *service) Reply(ctx context.Context, parentID uuid.UUID, input domain.ReplyCommentInput, principal *domain.User, client domain.ClientInfo) (*domain.Comment, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validateContent(input.Content); err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: parent comment does not exist", domain.ErrNotFound)
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		PostID:   parent.PostID,
		ParentID: &parentID,
		Author: domain.CommentAuthor{
			Registered: &domain.RegisteredAuthor{
				UserID:   principal.ID,
				FullName: principal.FullName,
			},
		},
		Content: input.Content,
		Status:  domain.CommentApproved,
	}
	if client.IPAddress != "" {
		comment.IPAddress = &client.IPAddress
	}
	if client.UserAgent != "" {
		comment.UserAgent = &client.UserAgent
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx, comment.PostID)

	return comment, nil
}

// GetTree returns the approved-only threaded view of a post's comments. The
// status restriction is fixed here on purpose: public callers can never widen
// it through request parameters.
func (s *service) GetTree(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublic() {
		return nil, fmt.Errorf("%w: post does not exist", domain.ErrNotFound)
	}

	cacheKey := treeCacheKey(postID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var forest []domain.Comment
			if json.Unmarshal([]byte(cached), &forest) == nil {
				return forest, nil
			}
		}
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, []domain.CommentStatus{domain.CommentApproved})
	if err != nil {
		return nil, err
	}

	forest := BuildForest(comments)

	if s.redis != nil {
		if payload, err := json.Marshal(forest); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, 5*time.Minute).Err()
		}
	}

	return forest, nil
}

func (s *service) ListForModeration(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return domain.PaginatedResponse[domain.Comment]{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *filter.Status)
	}

	comments, total, err := s.commentRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	params.Validate()
	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status domain.CommentStatus, moderator *domain.User) (*domain.Comment, error) {
	if !status.IsModerationTarget() {
		return nil, fmt.Errorf("%w: status must be approved, rejected or spam", domain.ErrValidation)
	}

	existing, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: comment does not exist", domain.ErrNotFound)
	}

	affected, err := s.commentRepo.UpdateStatus(ctx, id, status, moderator.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: comment does not exist", domain.ErrNotFound)
	}

	s.invalidateTree(ctx, existing.PostID)

	return s.commentRepo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: comment does not exist", domain.ErrNotFound)
	}

	// Partial removal of a subtree must never be reported as success.
	if _, err := s.commentRepo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("cascade delete failed: %w", domain.ErrUnavailable)
	}

	s.invalidateTree(ctx, existing.PostID)

	return nil
}

func (s *service) BulkAction(ctx context.Context, input domain.BulkCommentActionInput, moderator *domain.User) (*domain.BulkActionSummary, error) {
	if len(input.CommentIDs) == 0 {
		return nil, fmt.Errorf("%w: comment id set is empty", domain.ErrValidation)
	}
	if !input.Action.IsValid() {
		return nil, fmt.Errorf("%w: unknown bulk action %q", domain.ErrValidation, input.Action)
	}

	var affected int64
	var err error

	if target, ok := input.Action.TargetStatus(); ok {
		// Ids that do not resolve are skipped, not an error: moderation
		// workflows prefer partial success.
		affected, err = s.commentRepo.UpdateStatusBulk(ctx, input.CommentIDs, target, moderator.ID, time.Now())
		if err != nil {
			return nil, err
		}
	} else {
		affected, err = s.commentRepo.DeleteCascadeBulk(ctx, input.CommentIDs)
		if err != nil {
			return nil, fmt.Errorf("bulk cascade delete failed: %w", domain.ErrUnavailable)
		}
	}

	s.invalidateAllTrees(ctx)

	return &domain.BulkActionSummary{
		Action:        input.Action,
		RequestedIDs:  len(input.CommentIDs),
		AffectedCount: affected,
	}, nil
}

func (s *service) Stats(ctx context.Context) (*domain.CommentStats, error) {
	return s.commentRepo.Stats(ctx)
}

func (s *service) validateContent(content string) error {
	length := utf8.RuneCountInString(content)
	if length < domain.CommentContentMinLen || length > domain.CommentContentMaxLen {
		return fmt.Errorf("%w: content must be 1-%d characters", domain.ErrValidation, domain.CommentContentMaxLen)
	}
	if !s.checker.IsSafe(content) {
		return fmt.Errorf("%w: content failed the safety check", domain.ErrValidation)
	}
	return nil
}

// resolveAuthor picks the authorship variant and the initial status: comments
// from registered users are trusted, visitor comments wait for moderation.
func resolveAuthor(principal *domain.User, input domain.CreateCommentInput) (domain.CommentAuthor, domain.CommentStatus, error) {
	if principal != nil {
		return domain.CommentAuthor{
			Registered: &domain.RegisteredAuthor{
				UserID:   principal.ID,
				FullName: principal.FullName,
			},
		}, domain.CommentApproved, nil
	}

	if input.AuthorName == "" {
		return domain.CommentAuthor{}, "", fmt.Errorf("%w: author name is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(input.AuthorEmail); err != nil {
		return domain.CommentAuthor{}, "", fmt.Errorf("%w: a valid author email is required", domain.ErrValidation)
	}
	if input.AuthorWebsite != nil && *input.AuthorWebsite != "" {
		u, err := url.Parse(*input.AuthorWebsite)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return domain.CommentAuthor{}, "", fmt.Errorf("%w: author website must be an http(s) URL", domain.ErrValidation)
		}
	}

	website := input.AuthorWebsite
	if website != nil && *website == "" {
		website = nil
	}

	return domain.CommentAuthor{
		Guest: &domain.GuestAuthor{
			Name:    input.AuthorName,
			Email:   input.AuthorEmail,
			Website: website,
		},
	}, domain.CommentPending, nil
}

func treeCacheKey(postID uuid.UUID) string {
	return fmt.Sprintf("comments:tree:%s", postID)
}

func (s *service) invalidateTree(ctx context.Context, postID uuid.UUID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, treeCacheKey(postID)).Err()
}

func (s *service) invalidateAllTrees(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, "comments:tree:*").Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
