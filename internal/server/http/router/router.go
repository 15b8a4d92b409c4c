package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cvorders/internal/server/http/handlers"
	"github.com/polkiloo/cvorders/internal/server/http/middleware"
)

// Options tune the engine built by Setup.
type Options struct {
	// FilesDir is exposed read-only under /files when set.
	FilesDir string
	// MaxBodyBytes caps inflated gzip request bodies.
	MaxBodyBytes int64
}

// Setup configures gin router with handlers and middleware. stream serves
// the staff event feed and may be nil.
func Setup(facade handlers.Facade, stream http.Handler, opts Options, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(opts.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/staff/stream"})))

	var (
		authHandler    = handlers.NewAuthHandler(facade)
		profileHandler = handlers.NewProfileHandler(facade)
		catalogHandler = handlers.NewCatalogHandler(facade)
		sessionHandler = handlers.NewSessionHandler(facade)
		orderHandler   = handlers.NewOrderHandler(facade)
		wizardHandler  = handlers.NewWizardHandler(facade)
		paymentHandler = handlers.NewPaymentHandler(facade)
		staffHandler   = handlers.NewStaffHandler(facade)
		healthHandler  = handlers.NewHealthHandler(facade)
	)

	engine.GET("/healthz", healthHandler.Check)
	if opts.FilesDir != "" {
		engine.Static("/files", opts.FilesDir)
	}

	api := engine.Group("/api")
	api.POST("/user/register", authHandler.Register)
	api.POST("/user/login", authHandler.Login)
	api.GET("/catalog/packages", catalogHandler.Packages)
	api.GET("/catalog/templates", catalogHandler.Templates)
	api.POST("/payments/webhook", paymentHandler.Webhook)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	user := authed.Group("/user")
	user.GET("", profileHandler.Get)
	user.PUT("", profileHandler.Update)
	user.POST("/avatar", profileHandler.UploadAvatar)
	user.GET("/work-history", profileHandler.ListWorkHistory)
	user.POST("/work-history", profileHandler.AddWorkHistory)
	user.PUT("/work-history/:id", profileHandler.UpdateWorkHistory)
	user.DELETE("/work-history/:id", profileHandler.DeleteWorkHistory)
	user.GET("/education", profileHandler.ListEducation)
	user.POST("/education", profileHandler.AddEducation)
	user.PUT("/education/:id", profileHandler.UpdateEducation)
	user.DELETE("/education/:id", profileHandler.DeleteEducation)
	user.GET("/skills", profileHandler.ListSkills)
	user.POST("/skills", profileHandler.AddSkill)
	user.PUT("/skills/:id", profileHandler.UpdateSkill)
	user.DELETE("/skills/:id", profileHandler.DeleteSkill)
	user.GET("/professional-summary", profileHandler.GetSummary)
	user.PUT("/professional-summary", profileHandler.SaveSummary)

	authed.GET("/session", sessionHandler.Get)
	authed.DELETE("/session/order", sessionHandler.ClearOrder)

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.DELETE("/:id", orderHandler.Delete)
	orders.PUT("/:id/resume", orderHandler.UpdateResume)
	orders.PUT("/:id/extras", orderHandler.UpdateExtras)
	orders.PUT("/:id/template", orderHandler.SaveTemplate)
	orders.POST("/:id/revision", orderHandler.RequestRevision)
	orders.POST("/:id/download", orderHandler.Download)
	orders.POST("/:id/confirm", orderHandler.Confirm)
	orders.POST("/:id/payments/mpesa", paymentHandler.MobileMoney)
	orders.POST("/:id/payments/widget", paymentHandler.Widget)

	wizard := authed.Group("/wizard")
	wizard.POST("", wizardHandler.Start)
	wizard.GET("", wizardHandler.Get)
	wizard.POST("/advance", wizardHandler.Advance)
	wizard.POST("/retreat", wizardHandler.Retreat)
	wizard.POST("/jump", wizardHandler.Jump)

	staff := authed.Group("/staff")
	staff.Use(middleware.StaffOnly(facade))
	staff.GET("/orders", staffHandler.List)
	staff.PATCH("/orders/:id/status", staffHandler.ChangeStatus)
	staff.POST("/orders/:id/files", staffHandler.UploadFile)
	staff.GET("/orders/:id/history", staffHandler.History)
	if stream != nil {
		staff.GET("/stream", gin.WrapH(stream))
	}

	return engine
}
