package service

import (
	"github.com/redis/go-redis/v9"

	"kabar/internal/config"
	"kabar/internal/repository"
	"kabar/internal/service/auth"
	"kabar/internal/service/authz"
	"kabar/internal/service/captcha"
	"kabar/internal/service/comment"
	"kabar/internal/service/email"
	"kabar/internal/service/post"
	"kabar/internal/service/role"
	"kabar/internal/service/sanitizer"
	"kabar/internal/service/throttle"
	"kabar/internal/service/user"
)

type Services struct {
	Auth    auth.Service
	Authz   authz.Service
	Captcha captcha.Service
	Comment comment.Service
	Post    post.Service
	User    user.Service
	Role    role.Service
	Email   email.Service

	Throttle *throttle.Limiter
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Role, cfg)
	authzService := authz.NewService()
	captchaService := captcha.NewService(redisClient, cfg)
	limiter := throttle.New(cfg.ThrottleWindow, cfg.ThrottleMax)
	contentChecker := sanitizer.New()

	commentService := comment.NewService(
		repos.Comment,
		repos.Post,
		captchaService,
		limiter,
		contentChecker,
		emailService,
		redisClient,
		cfg,
	)

	return &Services{
		Auth:     authService,
		Authz:    authzService,
		Captcha:  captchaService,
		Comment:  commentService,
		Post:     post.NewService(repos.Post),
		User:     user.NewService(repos.User, repos.Role),
		Role:     role.NewService(repos.Role),
		Email:    emailService,
		Throttle: limiter,
	}
}
