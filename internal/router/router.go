package router

import (
	"net/http"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/config"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/handler"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/mail"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, db *gorm.DB, mailer mail.Sender, log *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		cors.Default(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 登录/注册接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, cfg.Auth.SessionSecret)
	r.POST("/registerUser", authHandler.Register)
	r.POST("/loginuser", authHandler.Login)

	// 密码重置（token 自带身份，不需要鉴权）
	resetHandler := handler.NewResetHandler(db, cfg.Auth.ResetSecret, cfg.App.FrontendBaseURL, mailer, log)
	r.POST("/forgotPassword", resetHandler.ForgotPassword)
	r.GET("/reset-password/:token", resetHandler.ValidateResetToken)
	r.POST("/updatePassword/:token", resetHandler.UpdatePassword)

	// 需要登录才能访问的接口
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.Auth.SessionSecret))

	txnHandler := handler.NewTransactionHandler(db)
	protected.GET("/gettxns", txnHandler.ListTransactions)
	protected.POST("/addtxn", txnHandler.CreateTransaction)
	protected.PUT("/updatetxn/:id", txnHandler.UpdateTransaction)
	protected.DELETE("/deletetxn/:id", txnHandler.DeleteTransaction)

	return r
}
