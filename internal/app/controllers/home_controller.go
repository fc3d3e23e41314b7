package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/app/services"
	"github.com/yigit/skillhub/internal/app/views"
)

// HomeController handles the landing page
type HomeController struct {
	*Env
	dashboardService services.DashboardService
}

// NewHomeController creates a new home controller
func NewHomeController(env *Env, dashboardService services.DashboardService) *HomeController {
	return &HomeController{
		Env:              env,
		dashboardService: dashboardService,
	}
}

// Home shows the student and course totals
func (c *HomeController) Home(ctx *gin.Context) {
	n := c.notifier(ctx)

	counts, err := c.dashboardService.Counts(ctx.Request.Context())
	if err != nil {
		if gone(ctx, err) {
			return
		}
		c.logger.Error().Err(err).Msg("Failed to load stats")
		n.Error("Could not load stats")
		counts = models.Counts{}
	} else {
		n.Success("Stats updated")
	}

	ctx.HTML(http.StatusOK, views.PageHome, views.HomeData{
		Base:   c.base(ctx, n, "Home", "home"),
		Counts: counts,
	})
}
