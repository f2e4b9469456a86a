package http

import (
	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	// OAuth entry points stay outside the identity middleware.
	public := h.engine.Group("/api/auth")
	public.GET("/login", Login(h.context))
	public.GET("/callback", Callback(h.context))
	public.POST("/logout", Logout(h.context))

	api := h.engine.Group("/api")
	api.Use(middleware.IdentityMiddleware(h.context))
	api.Use(middleware.UsageTrackingMiddleware(h.context))

	api.GET("/auth/me", GetUserInfo(h.context))

	h.setupProductRoutes(api)
	h.setupLineageRoutes(api)
	h.setupQualityRoutes(api)
	h.setupCommentRoutes(api)
	h.setupWarehouseRoutes(api)

	api.GET("/search", SearchDataProducts(h.context))
	api.GET("/usage-stats", GetUsageStats(h.context))
	api.GET("/stewardship/metrics", GetStewardshipMetrics(h.context))
	api.GET("/dashboard/stats", GetDashboardStatistics(h.context))

	h.engine.Static("/static", "./static")
	h.engine.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
}

func (h *APIService) setupProductRoutes(group *gin.RouterGroup) {
	group.GET("/data-products", GetDataProducts(h.context))
	group.POST("/data-products", CreateDataProduct(h.context))
	group.PUT("/data-products/:id", UpdateDataProduct(h.context))
	group.GET("/metadata/:id", GetDataProductMetadata(h.context))
}

func (h *APIService) setupLineageRoutes(group *gin.RouterGroup) {
	group.GET("/lineage/:id", GetLineage(h.context))
	group.POST("/lineage/:id", SaveLineage(h.context))
	group.GET("/lineage/:id/versions", GetLineageVersions(h.context))
}

func (h *APIService) setupQualityRoutes(group *gin.RouterGroup) {
	group.GET("/quality-metrics/:id", GetQualityMetrics(h.context))
	group.POST("/quality-metrics/:id", RecordQualityMetric(h.context))
	group.POST("/metric-definitions", CreateMetricDefinition(h.context))
	group.GET("/metric-definitions/:id", GetMetricDefinitions(h.context))
}

func (h *APIService) setupCommentRoutes(group *gin.RouterGroup) {
	group.GET("/data-products/:id/comments", GetComments(h.context))
	group.POST("/data-products/:id/comments", CreateComment(h.context))
	group.POST("/comments/:id/reactions", AddCommentReaction(h.context))
}

func (h *APIService) setupWarehouseRoutes(group *gin.RouterGroup) {
	group.POST("/schema/:id/import", ImportWarehouseSchema(h.context))
	group.GET("/schema/:id/changes", GetSchemaChanges(h.context))
	group.POST("/files/:id", UploadWarehouseKey(h.context))
}
