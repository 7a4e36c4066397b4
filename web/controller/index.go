package controller

import (
	"net/http"

	"pillbox/config"
	"pillbox/database/model"
	"pillbox/logger"
	"pillbox/web/service"
	"pillbox/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login and registration request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the dashboard and login-related routes.
type IndexController struct {
	BaseController

	userService     service.UserService
	medicineService service.MedicineService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

// index serves the dashboard view model for a user session, sends admin
// sessions to the admin dashboard, and anonymous clients to login.
func (a *IndexController) index(c *gin.Context) {
	identity := session.GetIdentity(c)
	if identity == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if identity.Role == model.RoleAdmin {
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}

	meds, err := a.medicineService.GetMedicines(identity.UserId)
	if err != nil {
		jsonMsg(c, "load medicines", err)
		return
	}
	jsonObj(c, gin.H{
		"medicines": meds,
		"flashes":   session.Flashes(c),
	}, nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	jsonObj(c, gin.H{"flashes": session.Flashes(c)}, nil)
}

// register creates a new account and redirects to login.
func (a *IndexController) register(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "Invalid form data")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	err := a.userService.Register(form.Email, form.Password)
	if err == service.ErrDuplicateEmail {
		session.AddFlash(c, "Email already registered!")
		c.Redirect(http.StatusFound, "/register")
		return
	} else if err != nil {
		logger.Warning("register err:", err)
		session.AddFlash(c, "Registration failed")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	session.AddFlash(c, "Registration successful!")
	c.Redirect(http.StatusFound, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	jsonObj(c, gin.H{"flashes": session.Flashes(c)}, nil)
}

// login authenticates and establishes the session identity. The role on
// the account decides between a user and an admin session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "Invalid form data")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := a.userService.Login(form.Email, form.Password)
	if err == service.ErrInvalidCredentials {
		logger.Warningf("failed login for %q, IP %s", service.NormalizeEmail(form.Email), getRemoteIp(c))
		session.AddFlash(c, "Invalid email or password")
		c.Redirect(http.StatusFound, "/login")
		return
	} else if err != nil {
		session.AddFlash(c, "Login failed")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetIdentity(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		jsonMsg(c, "login", err)
		return
	}

	logger.Infof("%s logged in, IP %s", user.Email, getRemoteIp(c))
	if user.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// logout clears the session identity unconditionally.
func (a *IndexController) logout(c *gin.Context) {
	if identity := session.GetIdentity(c); identity != nil {
		logger.Infof("user %d logged out", identity.UserId)
	}
	if err := session.ClearIdentity(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/login")
}
