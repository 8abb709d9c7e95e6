package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shop_service/internal/auth"
	"shop_service/internal/models"
	"shop_service/internal/ratelimit"
	"shop_service/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	serviceLayer service.Service
	catalog      service.Catalog
	issuer       *auth.Issuer
	limiter      *ratelimit.PerClient
	log          *slog.Logger
}

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

// statusFor maps the service error taxonomy to transport responses.
// Anything unrecognized is an infrastructure failure and surfaces as a
// generic 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusBadRequest, "User not found"
	case errors.Is(err, service.ErrBadCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, service.ErrCodeMismatch):
		return http.StatusBadRequest, "Invalid verification code"
	case errors.Is(err, service.ErrResetTicketInvalid):
		return http.StatusBadRequest, "Invalid or expired reset token"
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return http.StatusForbidden, "Invalid refresh token"
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// requestLogger returns the handler logger scoped to one request: the
// operation name plus the id assigned by the RequestID middleware.
func (h *Handler) requestLogger(c *gin.Context, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", c.GetString(ctxRequestID)),
	)
}

func NewHandler(srvc service.Service, cat service.Catalog, iss *auth.Issuer, lim *ratelimit.PerClient, lgr *slog.Logger) *Handler {
	return &Handler{
		serviceLayer: srvc,
		catalog:      cat,
		issuer:       iss,
		limiter:      lim,
		log:          lgr,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())

	api := router.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", LoginLimiter(h.limiter, h.log), h.Login)
		api.POST("/token", h.RefreshToken)
		api.POST("/logout", h.Logout)
		api.POST("/verify-email", h.VerifyEmail)
		api.POST("/request-password-reset", h.RequestPasswordReset)
		api.POST("/reset-password", h.ResetPassword)
	}

	authed := api.Group("", AuthMiddleware(h.issuer))
	{
		authed.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) {
			c.String(http.StatusOK, "Welcome Admin")
		})
		authed.GET("/user", RequireRole(models.RoleUser), func(c *gin.Context) {
			c.String(http.StatusOK, "Welcome User")
		})
		authed.GET("/protected", func(c *gin.Context) {
			c.String(http.StatusOK, "Welcome %s", c.GetString(ctxRole))
		})
	}

	products := api.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)

		admin := products.Group("", AuthMiddleware(h.issuer), RequireRole(models.RoleAdmin))
		admin.POST("", h.CreateProduct)
		admin.PUT("/:id", h.UpdateProduct)
		admin.DELETE("/:id", h.DeleteProduct)
	}

	orders := api.Group("/orders", AuthMiddleware(h.issuer))
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}

	return router
}

// POST /api/register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	log := h.requestLogger(c, op)

	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	_, err := h.serviceLayer.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		log.Error("failed to register user", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.String(http.StatusCreated, "User registered. Please check your email to verify your account.")
}

// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	const op = "handler.Login"

	log := h.requestLogger(c, op)

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	tokens, user, err := h.serviceLayer.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("failed to login", slog.String("username", req.Username), slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	setSessionCookie(c, accessTokenCookie, tokens.Access)
	setSessionCookie(c, refreshTokenCookie, tokens.Refresh)

	who := "User"
	if user.Role == models.RoleAdmin {
		who = "Admin"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Login successfully. Welcome %s.", who),
		"role":    user.Role,
	})
}

// POST /api/token
func (h *Handler) RefreshToken(c *gin.Context) {
	const op = "handler.RefreshToken"

	log := h.requestLogger(c, op)

	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		newErrorResponse(c, http.StatusUnauthorized, "Refresh token required")

		return
	}

	accessToken, err := h.serviceLayer.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		log.Error("failed to refresh access token", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	setSessionCookie(c, accessTokenCookie, accessToken)

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	const op = "handler.Logout"

	log := h.requestLogger(c, op)

	refreshToken, _ := c.Cookie(refreshTokenCookie)
	if refreshToken != "" {
		if err := h.serviceLayer.Logout(c.Request.Context(), refreshToken); err != nil {
			// Logout is best-effort; the cookies are cleared anyway.
			log.Error("failed to revoke refresh token", slog.Any("error", err))
		}
	}

	clearSessionCookie(c, accessTokenCookie)
	clearSessionCookie(c, refreshTokenCookie)

	c.Status(http.StatusNoContent)
}

// POST /api/verify-email
func (h *Handler) VerifyEmail(c *gin.Context) {
	const op = "handler.VerifyEmail"

	log := h.requestLogger(c, op)

	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	if err := h.serviceLayer.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		log.Error("failed to verify email", slog.String("email", req.Email), slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.String(http.StatusOK, "Email verified successfully")
}

// POST /api/request-password-reset
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	const op = "handler.RequestPasswordReset"

	log := h.requestLogger(c, op)

	var req struct {
		Email string `json:"email" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	if err := h.serviceLayer.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		log.Error("failed to request password reset", slog.String("email", req.Email), slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.String(http.StatusOK, "Password reset email sent")
}

// POST /api/reset-password
func (h *Handler) ResetPassword(c *gin.Context) {
	const op = "handler.ResetPassword"

	log := h.requestLogger(c, op)

	var req struct {
		Email       string `json:"email" binding:"required"`
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	if err := h.serviceLayer.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		log.Error("failed to reset password", slog.String("email", req.Email), slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.String(http.StatusOK, "Password has been reset successfully")
}

func setSessionCookie(c *gin.Context, name, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, 0, "/", "", true, true)
}

func clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
}
