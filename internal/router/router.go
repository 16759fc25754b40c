package router

import (
	"net/http"

	"peerly/internal/handlers"
	"peerly/internal/metrics"
	"peerly/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps 路由依赖，Metrics 为 nil 时不暴露 /metrics
type Deps struct {
	AppName  string
	Store    handlers.RecognitionStore
	Resolver middleware.IdentityResolver
	Metrics  *metrics.Metrics
	Log      logrus.FieldLogger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	var grants handlers.GrantRecorder
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
		grants = deps.Metrics
	}

	recognitionHandler := handlers.NewRecognitionHandler(deps.Store, grants, deps.Log)

	// 健康检查，不需要版本和鉴权
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/")
	api.Use(middleware.APIVersion(deps.AppName))

	// Recognition 路由
	recognitions := api.Group("/recognitions")
	recognitions.Use(middleware.AuthRequired(deps.Resolver, deps.Store, deps.Log))
	{
		recognitions.POST("", recognitionHandler.Create)          // 创建 recognition
		recognitions.GET("", recognitionHandler.FindAll)          // 组织内列表，支持过滤和分页
		recognitions.GET("/:id", recognitionHandler.FindOne)      // 单条详情
		recognitions.POST("/:id/hi5", recognitionHandler.GiveHi5) // 给 recognition 点 Hi5
	}
}
