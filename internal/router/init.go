package router

import (
	"socialnet/internal/application"
	"socialnet/internal/container"
	pginfra "socialnet/internal/infrastructure/postgres"
	handlers "socialnet/internal/interface/http"
	"socialnet/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	tokens := pginfra.NewTokenRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	comments := pginfra.NewCommentRepository(pool)
	replies := pginfra.NewCommentReplyRepository(pool)

	authSvc := &application.AuthService{
		Users:      users,
		Tokens:     tokens,
		JWT:        container.GetJWT(),
		Phone:      container.GetPhoneCipher(),
		OTP:        container.GetOTPGenerator(),
		Mail:       container.GetMailSender(),
		Rotation:   container.GetRotation(),
		Index:      container.GetUserIndex(),
		Logger:     logger,
		MaxOTPSend: container.GetConfig().MaxOTPSend,
	}
	userSvc := &application.UserService{
		Users:  users,
		Phone:  container.GetPhoneCipher(),
		Media:  container.GetMediaStore(),
		Index:  container.GetUserIndex(),
		Logger: logger,
	}
	postSvc := &application.PostService{
		Posts:    posts,
		Comments: comments,
		Replies:  replies,
		Media:    container.GetMediaStore(),
		Logger:   logger,
	}
	commentSvc := &application.CommentService{
		Comments: comments,
		Replies:  replies,
		Posts:    posts,
		Logger:   logger,
	}
	replySvc := &application.ReplyService{
		Replies:  replies,
		Comments: comments,
		Posts:    posts,
		Logger:   logger,
	}

	jwt := container.GetJWT()
	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, userSvc, logger), jwt, users, tokens))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt, users, tokens))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), jwt, users, tokens))
	r.Add(modules.NewReplyModule(handlers.NewReplyHandler(replySvc, logger), jwt, users, tokens))
}
