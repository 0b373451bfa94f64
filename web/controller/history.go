package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Tushar-web474/ImageForge/logger"
	"github.com/Tushar-web474/ImageForge/web/service"
	"github.com/Tushar-web474/ImageForge/web/session"

	"github.com/gin-gonic/gin"
)

// HistoryController lists, deletes and edits the user's generated images.
type HistoryController struct {
	BaseController

	historyService service.HistoryService
}

func NewHistoryController(g *gin.RouterGroup) *HistoryController {
	a := &HistoryController{}
	a.initRouter(g)
	return a
}

func (a *HistoryController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/")
	g.Use(a.checkLogin)

	g.GET("/history", a.history)
	g.POST("/delete_image/:id", a.deleteImage)
	g.GET("/edit_image/:id", a.editImagePage)
	g.POST("/save_edited_image", a.saveEditedImage)
}

func (a *HistoryController) history(c *gin.Context) {
	userID, _ := session.GetUserID(c)
	images, err := a.historyService.ListForUser(userID)
	if err != nil {
		logger.Warning("listing history:", err)
		session.AddFlash(c, "error", "Could not load your history.")
	}
	html(c, "history.html", gin.H{"images": images})
}

// deleteImage removes one image (row and file) owned by the current user.
func (a *HistoryController) deleteImage(c *gin.Context) {
	userID, _ := session.GetUserID(c)
	imageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "error", "Image not found or you do not have permission to delete it.")
		c.Redirect(http.StatusFound, "/history")
		return
	}

	err = a.historyService.Delete(imageID, userID)
	switch {
	case err == nil:
		session.AddFlash(c, "success", "Image deleted successfully!")
	case errors.Is(err, service.ErrNotFound):
		session.AddFlash(c, "error", "Image not found or you do not have permission to delete it.")
	default:
		logger.Warning("deleting image:", err)
		session.AddFlash(c, "error", "Could not delete the image.")
	}
	c.Redirect(http.StatusFound, "/history")
}

// editImagePage serves the editor for one owned image.
func (a *HistoryController) editImagePage(c *gin.Context) {
	userID, _ := session.GetUserID(c)
	imageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "error", "Image not found or you do not have permission to edit it.")
		c.Redirect(http.StatusFound, "/history")
		return
	}

	image, err := a.historyService.GetForUser(imageID, userID)
	if err != nil {
		session.AddFlash(c, "error", "Image not found or you do not have permission to edit it.")
		c.Redirect(http.StatusFound, "/history")
		return
	}
	html(c, "edit_image.html", gin.H{"image": image})
}

// saveEditedImage replaces the stored image content in place. Unlike the
// other handlers it answers JSON: 200 on success, 403 when the record is
// missing or not owned, 500 on I/O failure.
func (a *HistoryController) saveEditedImage(c *gin.Context) {
	userID, _ := session.GetUserID(c)

	imageID, err := strconv.Atoi(c.PostForm("image_id"))
	if err != nil {
		pureJsonMsg(c, http.StatusForbidden, false, "Image not found")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "No image uploaded")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, err.Error())
		return
	}
	defer file.Close()

	err = a.historyService.ReplaceImageContent(imageID, userID, file)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrNotFound):
		pureJsonMsg(c, http.StatusForbidden, false, "Image not found")
	default:
		logger.Warning("saving edited image:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, err.Error())
	}
}
