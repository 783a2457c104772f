// Package server 是推荐引擎的 HTTP 外壳：路由、入参校验、错误格式化。
// 业务语义全部在 engine 层；这里只做薄翻译。
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopstream/reco/config"
	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/engine"
)

// Server 持有引擎和可选的结果缓存。
type Server struct {
	engine *engine.Engine
	logger *zap.Logger
	cache  core.Store // 热门榜缓存，可为 nil
	cfg    config.RecommendConfig
	router *gin.Engine
}

// New 装配路由。cache 传 nil 时关闭热门榜缓存。
func New(eng *engine.Engine, logger *zap.Logger, cache core.Store, cfg *config.Config) *Server {
	s := &Server{
		engine: eng,
		logger: logger,
		cache:  cache,
		cfg:    cfg.Recommend,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	{
		api.GET("/recommendations/:user_id", s.getRecommendations)
		api.GET("/similar/:product_id", s.getSimilar)
		api.GET("/trending", s.getTrending)
		api.GET("/category/:category", s.getByCategory)
		api.POST("/interactions", s.postInteraction)
	}

	s.router = r
	return s
}

// Handler 返回底层 http.Handler（测试和 cmd 装配用）。
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"products": s.engine.Catalog().Len(),
	})
}

func (s *Server) getRecommendations(c *gin.Context) {
	userID := c.Param("user_id")
	if err := validateUserID(userID); err != nil {
		badRequest(c, err)
		return
	}
	limit := clampLimit(c.Query("limit"), s.cfg.DefaultLimit, s.cfg.MaxLimit)

	items, err := s.engine.ForUser(c.Request.Context(), userID, limit)
	if err != nil {
		s.logger.Error("personalized recommendation failed", zap.String("user_id", userID), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":         userID,
		"recommendations": toJSONList(items, recommendationJSON),
		"count":           len(items),
	})
}

func (s *Server) getSimilar(c *gin.Context) {
	productID := c.Param("product_id")
	if err := validateProductID(productID); err != nil {
		badRequest(c, err)
		return
	}
	limit := clampLimit(c.Query("limit"), s.cfg.DefaultLimit, s.cfg.MaxLimit)

	items := s.engine.SimilarTo(productID, limit)
	c.JSON(http.StatusOK, gin.H{
		"product_id":       productID,
		"similar_products": toJSONList(items, similarProductJSON),
		"count":            len(items),
	})
}

func (s *Server) getTrending(c *gin.Context) {
	limit := clampLimit(c.Query("limit"), s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	cacheKey := fmt.Sprintf("cache:trending:%d", limit)
	if s.cache != nil && s.cfg.TrendingCacheTTL > 0 {
		if data, err := s.cache.Get(c.Request.Context(), cacheKey); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	items := s.engine.Trending(limit)
	body := gin.H{
		"trending_products": toJSONList(items, trendingProductJSON),
		"count":             len(items),
	}

	if s.cache != nil && s.cfg.TrendingCacheTTL > 0 {
		// 目录不可变，热度榜只随 limit 变化，短 TTL 防配置热更新后榜单僵住
		if data, err := json.Marshal(body); err == nil {
			_ = s.cache.Set(c.Request.Context(), cacheKey, data, s.cfg.TrendingCacheTTL)
		}
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) getByCategory(c *gin.Context) {
	category := c.Param("category")
	if err := validateCategory(category); err != nil {
		badRequest(c, err)
		return
	}
	limit := clampLimit(c.Query("limit"), s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	items := s.engine.ByCategory(category, limit)
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"products": toJSONList(items, categoryProductJSON),
		"count":    len(items),
	})
}

func (s *Server) postInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "Invalid request body"))
		return
	}
	in, err := req.validate()
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := s.engine.RecordInteraction(c.Request.Context(), in); err != nil {
		s.logger.Error("record interaction failed", zap.String("user_id", in.UserID), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Interaction recorded successfully",
		"user_id":          in.UserID,
		"product_id":       in.ProductID,
		"interaction_type": string(in.Type),
	})
}
