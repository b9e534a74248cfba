package main

import (
	"context"
	"net/http"
	"time"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/handlers"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/middleware"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/responses"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/config"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/auth"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/export"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/ingest"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/reconcile"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/core/report"
	"github.com/LuisEduardoPedra/relatoriosOficina/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		responses.InitLogger(false)
		responses.Log().Fatal("erro ao carregar configuração", zap.Error(err))
	}
	responses.InitLogger(cfg.IsDev())
	defer responses.Sync()
	log := responses.Log()

	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal("configuração incompleta", zap.Error(err))
	}

	ctx := context.Background()
	st, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("erro ao inicializar armazenamento", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	jwtSecret := []byte(cfg.JWTSecret)
	authService := auth.NewService(st, jwtSecret, log)
	ingestService := ingest.NewService(
		report.NewService(log, time.Now),
		reconcile.NewReconciler(st, log),
		reconcile.NewConsolidator(st, log),
		log,
	)

	authHandler := handlers.NewAuthHandler(authService)
	uploadHandler := handlers.NewUploadHandler(ingestService)
	consolidadoHandler := handlers.NewConsolidadoHandler(ingestService, export.NewService())

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", authHandler.Login)
		protected := apiV1.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.POST("/upload/comissoes", uploadHandler.HandleComissoes)
			protected.POST("/upload/aproveitamento", uploadHandler.HandleAproveitamento)
			protected.POST("/consolidar", consolidadoHandler.Consolidar)
			protected.GET("/consolidado", consolidadoHandler.Listar)
			protected.GET("/consolidado/export", consolidadoHandler.Exportar)
		}
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "backend": cfg.StoreBackend})
	})

	log.Info("servidor iniciado", zap.String("porta", cfg.Port), zap.String("backend", cfg.StoreBackend))

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("falha ao iniciar o servidor", zap.Error(err))
	}
}
