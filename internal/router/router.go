package router

import (
	"github.com/yeheskieltame/spend-save-analyze/internal/config"
	"github.com/yeheskieltame/spend-save-analyze/internal/handler"
	"github.com/yeheskieltame/spend-save-analyze/internal/middleware"
	"github.com/yeheskieltame/spend-save-analyze/internal/notify"
	"github.com/yeheskieltame/spend-save-analyze/internal/service"
	"github.com/yeheskieltame/spend-save-analyze/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	hub := notify.NewHub()
	recordStore := store.NewGormStore(db)
	ledgerSvc := service.NewLedgerService(recordStore, hub)

	// ====== API ======
	api := r.Group("/api")

	// 登录/注册接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.ActivityMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	recordHandler := handler.NewRecordHandler(ledgerSvc)
	protected.POST("/records", recordHandler.CreateRecord)
	protected.GET("/records", recordHandler.ListRecords)
	protected.DELETE("/records/:id", recordHandler.DeleteRecord)

	debtHandler := handler.NewDebtHandler(ledgerSvc)
	protected.GET("/debts/unpaid", debtHandler.ListUnpaidDebts)
	protected.POST("/debts/:id/pay", debtHandler.PayDebt)

	summaryHandler := handler.NewSummaryHandler(ledgerSvc)
	protected.GET("/summary", summaryHandler.GetSummary)
	protected.GET("/periods", summaryHandler.GetPeriods)

	streamHandler := handler.NewStreamHandler(hub)
	protected.GET("/changes/stream", streamHandler.StreamChanges)

	activityHandler := handler.NewActivityHandler(db)
	protected.GET("/activity", activityHandler.ListActivity)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	return r
}
