package controller

import (
	"errors"
	"net/http"

	"github.com/Tushar-web474/ImageForge/logger"
	"github.com/Tushar-web474/ImageForge/web/service"
	"github.com/Tushar-web474/ImageForge/web/session"

	"github.com/gin-gonic/gin"
)

// GenerateController handles the prompt form and the generation call.
type GenerateController struct {
	BaseController

	generationService service.GenerationService
}

func NewGenerateController(g *gin.RouterGroup) *GenerateController {
	a := &GenerateController{}
	a.initRouter(g)
	return a
}

func (a *GenerateController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/")
	g.Use(a.checkLogin)

	g.GET("/generate", a.generatePage)
	g.POST("/generate", a.generate)
}

func (a *GenerateController) generatePage(c *gin.Context) {
	html(c, "generate.html", nil)
}

// generate runs one generation for the logged-in user and redirects to the
// history page on success.
func (a *GenerateController) generate(c *gin.Context) {
	userID, _ := session.GetUserID(c)

	prompt := c.PostForm("prompt")
	if prompt == "" {
		session.AddFlash(c, "error", "Please enter a prompt!")
		html(c, "generate.html", nil)
		return
	}

	record, err := a.generationService.Generate(c.Request.Context(), userID, prompt)
	switch {
	case err == nil:
		logger.Infof("user %d generated image %d", userID, record.Id)
		session.AddFlash(c, "success", "Image generated successfully!")
		c.Redirect(http.StatusFound, "/history")
	case errors.Is(err, service.ErrConfiguration):
		session.AddFlash(c, "error", "Stability AI API key not configured. Please set STABILITY_API_KEY environment variable.")
		html(c, "generate.html", nil)
	case errors.Is(err, service.ErrFiltered):
		session.AddFlash(c, "warning", "Your request activated the API safety filters. Please modify your prompt.")
		html(c, "generate.html", nil)
	default:
		logger.Warning("generation failed:", err)
		session.AddFlash(c, "error", "Error generating image: "+err.Error())
		html(c, "generate.html", nil)
	}
}
