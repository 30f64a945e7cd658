package handler

import (
	"github.com/gin-gonic/gin"

	"souqd/internal/middleware"
	"souqd/internal/session"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Verify    *VerificationHandler
	Account   *AccountHandler
	Products  *ProductHandler
	Sessions  *session.Manager
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/storage", deps.Auth.Register)
	api.GET("/storage", deps.Auth.StorageDump)
	api.GET("/account_exists", deps.Auth.AccountExists)
	api.POST("/login", deps.Auth.Login)
	api.POST("/login_google", deps.Auth.GoogleLogin)
	api.POST("/logout", deps.Auth.Logout)
	api.POST("/request_code", deps.Verify.RequestCode)
	api.POST("/verify_code", deps.Verify.VerifyCode)
	api.POST("/reset_password", deps.Verify.ResetPassword)
	api.GET("/products", deps.Products.List)
	api.GET("/products/:id", deps.Products.Get)

	authGroup := api.Group("")
	authGroup.Use(middleware.Auth(deps.Sessions, deps.JWTSecret))
	authGroup.GET("/me", deps.Account.Me)
	authGroup.POST("/update_profile", deps.Account.UpdateProfile)
	authGroup.POST("/request_email_change", deps.Account.RequestEmailChange)
	authGroup.POST("/confirm_email_change", deps.Account.ConfirmEmailChange)
	authGroup.POST("/products", deps.Products.Create)
	authGroup.DELETE("/products/:id", deps.Products.Delete)
}
