package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountusecases "github.com/inkwell-print/inkwell/internal/application/account/usecases"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

type AuthHandler struct {
	registerUC RegisterExecutor
	verifyUC   VerifyEmailExecutor
	loginUC    LoginExecutor
	logger     logger.Interface
}

func NewAuthHandler(registerUC RegisterExecutor, verifyUC VerifyEmailExecutor, loginUC LoginExecutor, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		verifyUC:   verifyUC,
		loginUC:    loginUC,
		logger:     logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), accountusecases.RegisterCommand{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Account created, check your email to verify it")
}

// VerifyEmail handles GET /auth/verify-email?token=
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var query VerifyEmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), accountusecases.VerifyEmailCommand{
		Token:     query.Token,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email verified", result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), accountusecases.LoginCommand{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
