package v1

import (
	"net/http"

	"talentlens-backend/config"
	"talentlens-backend/internal/delivery/http/middleware"
	"talentlens-backend/internal/delivery/http/response"
	"talentlens-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewCandidateHandler(v1, deps.CandidateUC)

	return r
}
