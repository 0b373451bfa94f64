package controller

import (
	"errors"
	"net/http"

	"github.com/Tushar-web474/ImageForge/logger"
	"github.com/Tushar-web474/ImageForge/web/service"
	"github.com/Tushar-web474/ImageForge/web/session"

	"github.com/gin-gonic/gin"
)

// ProfileForm represents the profile-edit request structure.
type ProfileForm struct {
	Email       string `form:"email"`
	NewPassword string `form:"new_password"`
}

// ProfileController shows and edits the logged-in user's profile.
type ProfileController struct {
	BaseController

	userService service.UserService
}

func NewProfileController(g *gin.RouterGroup) *ProfileController {
	a := &ProfileController{}
	a.initRouter(g)
	return a
}

func (a *ProfileController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/")
	g.Use(a.checkLogin)

	g.GET("/profile", a.profile)
	g.GET("/edit_profile", a.editProfilePage)
	g.POST("/edit_profile", a.editProfile)
}

func (a *ProfileController) profile(c *gin.Context) {
	userID, _ := session.GetUserID(c)
	user, err := a.userService.GetUser(userID)
	if err != nil {
		logger.Warning("loading profile:", err)
		session.AddFlash(c, "error", "Could not load your profile.")
		c.Redirect(http.StatusFound, "/generate")
		return
	}
	html(c, "profile.html", gin.H{"user": user})
}

func (a *ProfileController) editProfilePage(c *gin.Context) {
	userID, _ := session.GetUserID(c)
	user, err := a.userService.GetUser(userID)
	if err != nil {
		logger.Warning("loading profile:", err)
		session.AddFlash(c, "error", "Could not load your profile.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	html(c, "edit_profile.html", gin.H{"user": user})
}

// editProfile updates the email and optionally the password.
func (a *ProfileController) editProfile(c *gin.Context) {
	userID, _ := session.GetUserID(c)

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "error", "Invalid form data.")
		c.Redirect(http.StatusFound, "/edit_profile")
		return
	}

	err := a.userService.UpdateProfile(userID, form.Email, form.NewPassword)
	switch {
	case err == nil:
		session.AddFlash(c, "success", "Profile updated successfully!")
		c.Redirect(http.StatusFound, "/profile")
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicate):
		session.AddFlash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/edit_profile")
	default:
		logger.Warning("profile update failed:", err)
		session.AddFlash(c, "error", "Could not update your profile.")
		c.Redirect(http.StatusFound, "/edit_profile")
	}
}
