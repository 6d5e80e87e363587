package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/config"
	"github.com/inova-hub/portal-editais/src/api/data"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	attachRoutes(r, cfg, db, rdb)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://hub.inova.gov.br"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	edH := NewEditais(db)
	ntH := NewNotifications(db, rdb)
	admH := NewAdmin(db)
	catH := NewCatalogo(db)
	siteH := NewSite(data.GetSetting)

	limiter := NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	r.GET("/site-info", siteH.Info)

	pub := r.Group("/editais")
	{
		pub.GET("", edH.List)
		pub.GET("/:slug", edH.Detail)
		pub.GET("/notificar/:slug", ntH.Form)
		pub.POST("/notificar/:slug", RateLimitMiddleware(limiter), ntH.SubmitForm)
		pub.POST("/notificar-ajax", RateLimitMiddleware(limiter), ntH.SubmitAJAX)
	}

	v1 := r.Group("/v1")
	v1.POST("/auth/login", authH.Login)

	admin := v1.Group("/admin")
	admin.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
	{
		admin.GET("/dashboard", admH.Dashboard)
		admin.PUT("/settings", admH.AtualizarSettings)

		admin.GET("/editais", edH.AdminList)
		admin.POST("/editais", edH.AdminCreate)
		admin.GET("/editais/:id", edH.AdminGet)
		admin.PUT("/editais/:id", edH.AdminUpdate)
		admin.DELETE("/editais/:id", edH.AdminDelete)
		admin.POST("/editais/:id/status", edH.AlterarStatus)
		admin.POST("/editais/:id/destaque", edH.ToggleDestaque)

		admin.GET("/editais/:id/notificacoes", ntH.AdminList)
		admin.POST("/notificacoes/:id/notificado", ntH.MarcarNotificado)

		admin.GET("/editais/:id/anexos", catH.ListAnexos)
		admin.POST("/editais/:id/anexos", catH.CreateAnexo)
		admin.PUT("/anexos/:id", catH.UpdateAnexo)
		admin.DELETE("/anexos/:id", catH.DeleteAnexo)
		admin.POST("/anexos/:id/ativo", catH.ToggleAnexoAtivo)

		admin.GET("/categorias", catH.ListCategorias)
		admin.POST("/categorias", catH.CreateCategoria)
		admin.PUT("/categorias/:id", catH.UpdateCategoria)
		admin.DELETE("/categorias/:id", catH.DeleteCategoria)

		admin.GET("/areas", catH.ListAreas)
		admin.POST("/areas", catH.CreateArea)
		admin.PUT("/areas/:id", catH.UpdateArea)
		admin.DELETE("/areas/:id", catH.DeleteArea)
	}
}
