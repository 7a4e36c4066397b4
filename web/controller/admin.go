package controller

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"pillbox/database/model"
	"pillbox/logger"
	"pillbox/web/service"
	"pillbox/web/session"

	"github.com/gin-gonic/gin"
)

// AdminController handles the administrative routes: user inspection,
// cascade deletion, medicine editing, and CSV export.
type AdminController struct {
	BaseController

	userService     service.UserService
	medicineService service.MedicineService
}

// NewAdminController creates a new AdminController and sets up its routes.
func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("")
	admin.Use(a.checkAdmin)
	{
		admin.GET("/admin_dashboard", a.dashboard)
		admin.GET("/admin_user/:id", a.viewUser)
		admin.POST("/admin_delete_user/:id", a.deleteUser)
		admin.GET("/admin_edit_med/:id", a.editMedicinePage)
		admin.POST("/admin_edit_med/:id", a.editMedicine)
		admin.GET("/download_user_data/:id", a.downloadUserData)
	}
}

// dashboard lists every account except admin-role ones.
func (a *AdminController) dashboard(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		jsonMsg(c, "load users", err)
		return
	}
	jsonObj(c, gin.H{
		"users":   users,
		"flashes": session.Flashes(c),
	}, nil)
}

// viewUser shows one user together with that user's medicines.
func (a *AdminController) viewUser(c *gin.Context) {
	user, ok := a.lookupUser(c)
	if !ok {
		return
	}
	meds, err := a.medicineService.GetMedicines(user.Id)
	if err != nil {
		jsonMsg(c, "load medicines", err)
		return
	}
	jsonObj(c, gin.H{
		"user":      user,
		"medicines": meds,
		"flashes":   session.Flashes(c),
	}, nil)
}

// deleteUser removes a user and every medicine it owns in one
// transaction.
func (a *AdminController) deleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "User not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}

	err = a.userService.DeleteUser(id)
	if err == service.ErrNotFound {
		session.AddFlash(c, "User not found!")
	} else if err != nil {
		logger.Warning("delete user err:", err)
		session.AddFlash(c, "Delete failed")
	} else {
		session.AddFlash(c, "User deleted successfully!")
	}
	c.Redirect(http.StatusFound, "/admin_dashboard")
}

func (a *AdminController) editMedicinePage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "Medicine not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}
	med, err := a.medicineService.GetMedicine(id)
	if err != nil {
		session.AddFlash(c, "Medicine not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}
	jsonObj(c, gin.H{
		"medicine": med,
		"flashes":  session.Flashes(c),
	}, nil)
}

// editMedicine updates any user's medicine. Admin identity is the only
// gate; there is no ownership check here.
func (a *AdminController) editMedicine(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "Medicine not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}

	var fields model.Medicine
	if err := c.ShouldBind(&fields); err != nil {
		session.AddFlash(c, "Invalid form data")
		c.Redirect(http.StatusFound, "/admin_edit_med/"+c.Param("id"))
		return
	}

	med, err := a.medicineService.AdminUpdateMedicine(id, &fields)
	if err == service.ErrNotFound {
		session.AddFlash(c, "Medicine not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	} else if err != nil {
		session.AddFlash(c, err.Error())
		c.Redirect(http.StatusFound, "/admin_edit_med/"+c.Param("id"))
		return
	}

	session.AddFlash(c, "Medicine updated!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/admin_user/%d", med.UserId))
}

// downloadUserData streams a user's medicines as a CSV attachment.
func (a *AdminController) downloadUserData(c *gin.Context) {
	user, ok := a.lookupUser(c)
	if !ok {
		return
	}
	meds, err := a.medicineService.GetMedicines(user.Id)
	if err != nil {
		jsonMsg(c, "load medicines", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=user_%d_medicines.csv", user.Id))
	if err := writeMedicinesCSV(c.Writer, meds); err != nil {
		logger.Warning("write csv err:", err)
	}
}

// lookupUser resolves the :id path parameter; on failure it flashes and
// redirects to the admin dashboard.
func (a *AdminController) lookupUser(c *gin.Context) (*model.User, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "User not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return nil, false
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		session.AddFlash(c, "User not found!")
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return nil, false
	}
	return user, true
}

// writeMedicinesCSV encodes medicines as delimited text. Fields
// containing the delimiter or quotes are escaped by the encoder.
func writeMedicinesCSV(w io.Writer, meds []model.Medicine) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Medicine ID", "Name", "Dosage", "Time", "Start Date", "End Date", "Status"}); err != nil {
		return err
	}
	for _, m := range meds {
		record := []string{
			strconv.Itoa(m.Id),
			m.Name,
			m.Dosage,
			m.Time,
			m.StartDate,
			m.EndDate,
			m.Status,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
