package controller

import (
	"errors"
	"net/http"

	"github.com/Tushar-web474/ImageForge/logger"
	"github.com/Tushar-web474/ImageForge/web/service"
	"github.com/Tushar-web474/ImageForge/web/session"

	"github.com/gin-gonic/gin"
)

// SignupForm represents the signup request structure.
type SignupForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// IndexController handles the landing page and account entry routes.
type IndexController struct {
	BaseController

	userService service.UserService
}

// NewIndexController creates a new IndexController and initializes its
// routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/signup", a.signupPage)
	g.POST("/signup", a.signup)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", nil)
}

func (a *IndexController) signupPage(c *gin.Context) {
	html(c, "signup.html", nil)
}

// signup creates an account and sends the user to the login page.
func (a *IndexController) signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "error", "Invalid form data.")
		html(c, "signup.html", nil)
		return
	}

	_, err := a.userService.Register(form.Username, form.Email, form.Password, form.ConfirmPassword)
	switch {
	case err == nil:
		session.AddFlash(c, "success", "Account created successfully! Please log in.")
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, service.ErrValidation):
		session.AddFlash(c, "error", err.Error())
		html(c, "signup.html", nil)
	case errors.Is(err, service.ErrDuplicate):
		session.AddFlash(c, "error", "Username or email already exists!")
		html(c, "signup.html", nil)
	default:
		logger.Warning("signup failed:", err)
		session.AddFlash(c, "error", "Could not create the account.")
		html(c, "signup.html", nil)
	}
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/generate")
		return
	}
	html(c, "login.html", nil)
}

// login authenticates the user and establishes the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		session.AddFlash(c, "error", "Please enter both username and password!")
		html(c, "login.html", nil)
		return
	}

	user, err := a.userService.Authenticate(form.Username, form.Password)
	if err != nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		switch {
		case errors.Is(err, service.ErrNotFound):
			session.AddFlash(c, "error", "Invalid username")
		case errors.Is(err, service.ErrInvalidCredentials):
			session.AddFlash(c, "error", "Incorrect password")
		default:
			session.AddFlash(c, "error", "Login failed.")
		}
		html(c, "login.html", nil)
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		session.AddFlash(c, "error", "Login failed.")
		html(c, "login.html", nil)
		return
	}

	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))
	session.AddFlash(c, "success", "Login successful!")
	c.Redirect(http.StatusFound, "/generate")
}

// logout clears the session and returns to the landing page.
func (a *IndexController) logout(c *gin.Context) {
	if name := session.GetUsername(c); name != "" {
		logger.Infof("%s logged out", name)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	session.AddFlash(c, "success", "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}
