package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/reports"
	"github.com/alumbridge/scholarship-service/internal/services"
	"github.com/alumbridge/scholarship-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	profileHandler      *ProfileHandler
	scholarshipHandler  *ScholarshipHandler
	contributionHandler *ContributionHandler
	statsHandler        *StatsHandler
	authMiddleware      *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	exporter *reports.LedgerExporter,
	logger utils.Logger,
	authMiddleware *AuthMiddleware,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Directory(), logger),
		profileHandler:      NewProfileHandler(logger),
		scholarshipHandler:  NewScholarshipHandler(serviceManager.Scholarship(), logger),
		contributionHandler: NewContributionHandler(serviceManager.Contribution(), exporter, logger),
		statsHandler:        NewStatsHandler(serviceManager.Stats(), logger),
		authMiddleware:      authMiddleware,
	}
}

// SetupRoutes sets up all API routes. Registration and sign-in are public;
// everything else requires a bearer token.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.POST("/signup", hm.authHandler.Signup)
	router.POST("/login", hm.authHandler.Login)

	authed := router.Group("/")
	authed.Use(hm.authMiddleware.RequireAuth())
	{
		authed.GET("/profile", hm.profileHandler.GetProfile)
		authed.GET("/stats", hm.statsHandler.GetStats)

		authed.POST("/scholarship", hm.authMiddleware.RequireRole(models.RoleStudent), hm.scholarshipHandler.Submit)
		authed.GET("/scholarships", hm.scholarshipHandler.List)
		authed.GET("/scholarship/:studentId", hm.scholarshipHandler.GetByStudent)

		authed.POST("/contribute", hm.authMiddleware.RequireRole(models.RoleAlumni), hm.contributionHandler.Contribute)
		authed.GET("/contributions", hm.contributionHandler.ListMine)
		authed.GET("/contributions/export", hm.contributionHandler.Export)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "scholarship-service",
		})
	})
}
