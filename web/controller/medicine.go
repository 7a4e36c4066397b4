package controller

import (
	"net/http"
	"strconv"
	"time"

	"pillbox/database/model"
	"pillbox/web/service"
	"pillbox/web/session"

	"github.com/gin-gonic/gin"
)

// MedicineController handles the self-service medicine routes.
type MedicineController struct {
	BaseController

	medicineService service.MedicineService
}

// NewMedicineController creates a new MedicineController and sets up its routes.
func NewMedicineController(g *gin.RouterGroup) *MedicineController {
	a := &MedicineController{}
	a.initRouter(g)
	return a
}

func (a *MedicineController) initRouter(g *gin.RouterGroup) {
	user := g.Group("")
	user.Use(a.checkUser)
	{
		user.GET("/add", a.addPage)
		user.POST("/add", a.save)
		user.GET("/update_status/:id/:status", a.updateStatus)
		user.GET("/check_reminder", a.checkReminder)
		user.POST("/mark_taken/:id", a.markTaken)
	}

	// delete is reachable by the owner or by an admin
	del := g.Group("")
	del.Use(a.checkLogin)
	{
		del.POST("/delete_medicine/:id", a.deleteMedicine)
	}
}

// addPage serves the add form view model; with edit_id it loads the
// referenced medicine, which must belong to the caller.
func (a *MedicineController) addPage(c *gin.Context) {
	identity := session.GetIdentity(c)

	var med *model.Medicine
	if editId := c.Query("edit_id"); editId != "" {
		id, err := strconv.Atoi(editId)
		if err == nil {
			med, err = a.medicineService.GetUserMedicine(id, identity.UserId)
		}
		if err != nil || med == nil {
			session.AddFlash(c, "Medicine not found!")
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	jsonObj(c, gin.H{
		"medicine": med,
		"flashes":  session.Flashes(c),
	}, nil)
}

// save creates a medicine, or updates the one named by edit_id when it
// belongs to the caller.
func (a *MedicineController) save(c *gin.Context) {
	identity := session.GetIdentity(c)

	var fields model.Medicine
	if err := c.ShouldBind(&fields); err != nil {
		session.AddFlash(c, "Invalid form data")
		c.Redirect(http.StatusFound, "/add")
		return
	}

	if editId := c.Query("edit_id"); editId != "" {
		id, err := strconv.Atoi(editId)
		if err != nil {
			session.AddFlash(c, "Medicine not found!")
			c.Redirect(http.StatusFound, "/")
			return
		}
		err = a.medicineService.UpdateMedicine(id, identity.UserId, &fields)
		switch err {
		case nil:
			session.AddFlash(c, "Medicine updated!")
		case service.ErrNotFound, service.ErrForbidden:
			session.AddFlash(c, "Medicine not found!")
		default:
			session.AddFlash(c, err.Error())
			c.Redirect(http.StatusFound, "/add?edit_id="+editId)
			return
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := a.medicineService.AddMedicine(identity.UserId, &fields); err != nil {
		session.AddFlash(c, err.Error())
		c.Redirect(http.StatusFound, "/add")
		return
	}
	session.AddFlash(c, "Medicine added!")
	c.Redirect(http.StatusFound, "/")
}

// deleteMedicine removes a medicine for its owner or an admin and
// answers the JSON envelope consumed by client-side script.
func (a *MedicineController) deleteMedicine(c *gin.Context) {
	identity := session.GetIdentity(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusNotFound, false, "medicine not found")
		return
	}

	isAdmin := identity.Role == model.RoleAdmin
	if err := a.medicineService.DeleteMedicine(id, identity.UserId, isAdmin); err != nil {
		pureJsonMsg(c, http.StatusNotFound, false, "medicine not found")
		return
	}
	pureJsonMsg(c, http.StatusOK, true, "")
}

// updateStatus sets a medicine's status and redirects home. Failure is
// surfaced through a flash message rather than swallowed.
func (a *MedicineController) updateStatus(c *gin.Context) {
	identity := session.GetIdentity(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "Medicine not found!")
		c.Redirect(http.StatusFound, "/")
		return
	}

	err = a.medicineService.UpdateStatus(id, identity.UserId, c.Param("status"))
	switch err {
	case nil:
	case service.ErrNotFound, service.ErrForbidden:
		session.AddFlash(c, "Medicine not found!")
	default:
		session.AddFlash(c, err.Error())
	}
	c.Redirect(http.StatusFound, "/")
}

// checkReminder reports the caller's pending medicines due at the
// current minute as a plain JSON array.
func (a *MedicineController) checkReminder(c *gin.Context) {
	identity := session.GetIdentity(c)
	now := time.Now().Format("15:04")

	due, err := a.medicineService.CheckReminder(identity.UserId, now)
	if err != nil {
		jsonMsg(c, "check reminder", err)
		return
	}
	c.JSON(http.StatusOK, due)
}

// markTaken sets a medicine to Taken. Repeating the call keeps the
// status Taken and still reports success.
func (a *MedicineController) markTaken(c *gin.Context) {
	identity := session.GetIdentity(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusNotFound, false, "medicine not found")
		return
	}

	if err := a.medicineService.MarkTaken(id, identity.UserId); err != nil {
		pureJsonMsg(c, http.StatusNotFound, false, "medicine not found")
		return
	}
	pureJsonMsg(c, http.StatusOK, true, "")
}
