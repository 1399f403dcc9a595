package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/models"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// AuthHandler 负责登录/注册相关接口
type AuthHandler struct {
	DB            *gorm.DB
	SessionSecret string
}

func NewAuthHandler(db *gorm.DB, sessionSecret string) *AuthHandler {
	return &AuthHandler{
		DB:            db,
		SessionSecret: sessionSecret,
	}
}

// ---------- 注册 ----------

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if req.Username == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username is empty")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		util.ServerError(c, "failed to hash password")
		return
	}

	// email uniqueness is enforced by the unique index, so two racing
	// registrations cannot both slip through; the loser's violation is
	// translated to a conflict here
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusConflict, util.CodeConflict, "user already exists")
			return
		}
		util.ServerError(c, "failed to create user")
		return
	}

	// never echo the password or its hash
	util.Message(c, http.StatusOK, "user successfully registered")
}

// ---------- 登录 ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// uniform message: never reveal whether the username or the
			// password was wrong
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		} else {
			util.ServerError(c, "failed to query user")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}

	// session tokens carry no expiry; they stay valid until the session
	// secret rotates
	token, err := util.GenerateToken(h.SessionSecret, user.ID, user.Username, 0)
	if err != nil {
		util.ServerError(c, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
