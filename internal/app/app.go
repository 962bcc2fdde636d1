package app

import (
	"fmt"
	"jobboard/internal/app/deps"
	"jobboard/internal/app/services"
	requestpasswordreset "jobboard/internal/http/handlers/auth/request_password_reset"
	resetpassword "jobboard/internal/http/handlers/auth/reset_password"
	signup "jobboard/internal/http/handlers/auth/sign_up"
	verifyemail "jobboard/internal/http/handlers/auth/verify_email"
	verifyresettoken "jobboard/internal/http/handlers/auth/verify_reset_token"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp, isTestMode))
	authRouter.Method(http.MethodPut, "/verification", verifyemail.New(s.VerifyEmail))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		requestpasswordreset.New(s.RequestPasswordReset, isTestMode),
	)
	authRouter.Method(
		http.MethodGet,
		"/password_reset/verification",
		verifyresettoken.New(s.VerifyResetToken),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
