// Package captcha gates anonymous comment submissions behind a
// challenge-response check. Answers and one-time tokens live in Redis under a
// TTL; authenticated principals are never challenged.
package captcha

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"

	"kabar/internal/config"
	"kabar/internal/domain"
)

const (
	sessionKeyPrefix = "captcha:session:"
	tokenKeyPrefix   = "captcha:token:"

	challengeLength = 5
	challengeSource = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"
)

type Challenge struct {
	SessionID string `json:"session_id"`
	Image     string `json:"image"`
}

type Service interface {
	// Required reports whether the caller must present challenge proof.
	// Authenticated principals are exempt, as is the configured bypass token
	// outside production.
	Required(principal *domain.User, bypassToken string) bool
	CreateChallenge(ctx context.Context) (*Challenge, error)
	// Verify checks a text solution against the stored answer and consumes the
	// session either way. On success it returns a one-time token the client
	// may present instead of re-solving.
	Verify(ctx context.Context, sessionID, answer string) (string, error)
	// VerifyToken consumes a previously issued one-time token.
	VerifyToken(ctx context.Context, token string) error
}

type service struct {
	redis  *redis.Client
	cfg    *config.Config
	driver *base64Captcha.DriverString
}

func NewService(redisClient *redis.Client, cfg *config.Config) Service {
	driver := base64Captcha.NewDriverString(
		80, 240, 0, 0,
		challengeLength,
		challengeSource,
		nil, nil, nil,
	)

	return &service{
		redis:  redisClient,
		cfg:    cfg,
		driver: driver,
	}
}

func (s *service) Required(principal *domain.User, bypassToken string) bool {
	if principal != nil {
		return false
	}
	if bypassToken != "" && !s.cfg.IsProduction() &&
		s.cfg.CaptchaBypassToken != "" && bypassToken == s.cfg.CaptchaBypassToken {
		return false
	}
	return true
}

func (s *service) CreateChallenge(ctx context.Context) (*Challenge, error) {
	generator := base64Captcha.NewCaptcha(s.driver, base64Captcha.DefaultMemStore)
	_, image, answer, err := generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate challenge: %w", domain.ErrUnavailable)
	}

	sessionID := uuid.New().String()
	key := sessionKeyPrefix + sessionID
	if err := s.redis.Set(ctx, key, strings.ToLower(answer), s.cfg.CaptchaExpiry).Err(); err != nil {
		return nil, fmt.Errorf("store challenge answer: %w", domain.ErrUnavailable)
	}

	return &Challenge{SessionID: sessionID, Image: image}, nil
}

func (s *service) Verify(ctx context.Context, sessionID, answer string) (string, error) {
	if sessionID == "" || answer == "" {
		return "", fmt.Errorf("%w: missing challenge solution", domain.ErrInvalidChallenge)
	}

	key := sessionKeyPrefix + sessionID
	stored, err := s.redis.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("%w: unknown or expired challenge", domain.ErrInvalidChallenge)
	}
	if err != nil {
		return "", fmt.Errorf("read challenge answer: %w", domain.ErrUnavailable)
	}

	// The session is consumed on any attempt to keep brute forcing out.
	if strings.ToLower(strings.TrimSpace(answer)) != stored {
		return "", fmt.Errorf("%w: wrong answer", domain.ErrInvalidChallenge)
	}

	token := uuid.New().String()
	if err := s.redis.Set(ctx, tokenKeyPrefix+token, "1", s.cfg.CaptchaExpiry).Err(); err != nil {
		return "", fmt.Errorf("store challenge token: %w", domain.ErrUnavailable)
	}

	return token, nil
}

func (s *service) VerifyToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing challenge token", domain.ErrInvalidChallenge)
	}

	_, err := s.redis.GetDel(ctx, tokenKeyPrefix+token).Result()
	if err == redis.Nil {
		return fmt.Errorf("%w: unknown or expired challenge token", domain.ErrInvalidChallenge)
	}
	if err != nil {
		return fmt.Errorf("read challenge token: %w", domain.ErrUnavailable)
	}

	return nil
}
