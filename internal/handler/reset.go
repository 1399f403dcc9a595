package handler

import (
	"net/http"
	"strings"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/mail"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/models"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetHandler orchestrates the three password reset stages: request a
// reset link by email, validate a token from such a link, and complete
// the reset with a new password. The token carries all context, so the
// stages are independently invocable across sessions.
type ResetHandler struct {
	DB              *gorm.DB
	ResetSecret     string
	FrontendBaseURL string
	Mailer          mail.Sender
	Log             *zap.Logger
}

func NewResetHandler(db *gorm.DB, resetSecret, frontendBaseURL string, mailer mail.Sender, log *zap.Logger) *ResetHandler {
	return &ResetHandler{
		DB:              db,
		ResetSecret:     resetSecret,
		FrontendBaseURL: frontendBaseURL,
		Mailer:          mailer,
		Log:             log,
	}
}

// ---------- 阶段一：请求重置 ----------

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *ResetHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "this email is not associated with a registered user")
		} else {
			util.ServerError(c, "failed to query user")
		}
		return
	}

	// reset tokens are signed with the reset secret and expire after 15
	// minutes; they never verify as session tokens
	token, err := util.GenerateToken(h.ResetSecret, user.ID, "", util.ResetTokenTTL)
	if err != nil {
		util.ServerError(c, "failed to generate reset token")
		return
	}

	resetURL := strings.TrimRight(h.FrontendBaseURL, "/") + "/resetpassword/" + token

	if err := h.Mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		h.Log.Error("send reset mail", zap.Error(err))
		util.ServerError(c, "failed to send reset mail")
		return
	}

	h.Log.Info("password reset requested", zap.Uint("user_id", user.ID))
	util.Message(c, http.StatusOK, "password reset link sent to your email")
}

// ---------- 阶段二：校验 token ----------

// ValidateResetToken checks signature and expiry without mutating state.
func (h *ResetHandler) ValidateResetToken(c *gin.Context) {
	tokenStr := c.Param("token")

	if _, err := util.ParseToken(h.ResetSecret, tokenStr); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
		return
	}

	util.Message(c, http.StatusOK, "token valid")
}

// ---------- 阶段三：完成重置 ----------

type updatePasswordReq struct {
	Password string `json:"password" binding:"required,min=6,max=64"`
}

func (h *ResetHandler) UpdatePassword(c *gin.Context) {
	tokenStr := c.Param("token")

	claims, err := util.ParseToken(h.ResetSecret, tokenStr)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
		return
	}

	var req updatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.ServerError(c, "failed to query user")
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		util.ServerError(c, "failed to hash password")
		return
	}

	if err := h.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		util.ServerError(c, "failed to update password")
		return
	}

	h.Log.Info("password updated via reset token", zap.Uint("user_id", user.ID))
	util.Message(c, http.StatusOK, "password successfully updated")
}
