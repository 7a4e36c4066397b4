package service

import (
	"pillbox/database"
	"pillbox/database/model"
	"pillbox/util/common"

	"gorm.io/gorm"
)

type MedicineService struct{}

// ReminderItem is one due medicine returned by the reminder poll.
type ReminderItem struct {
	Id     int    `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

// validateFields canonicalizes the time-of-day and date range, and
// checks the status. Malformed input is rejected with a ValidationError
// instead of being stored as free text.
func validateFields(med *model.Medicine) error {
	t, err := common.ParseTimeOfDay(med.Time)
	if err != nil {
		return err
	}
	start, end, err := common.ParseDateRange(med.StartDate, med.EndDate)
	if err != nil {
		return err
	}
	if med.Status == "" {
		med.Status = model.StatusPending
	}
	if med.Status != model.StatusPending && med.Status != model.StatusTaken {
		return &common.ValidationError{Field: "status", Value: med.Status}
	}
	med.Time = t
	med.StartDate = start
	med.EndDate = end
	return nil
}

// GetMedicines returns a user's medicines in natural storage order.
func (s *MedicineService) GetMedicines(userId int) ([]model.Medicine, error) {
	db := database.GetDB()
	var meds []model.Medicine
	err := db.Model(model.Medicine{}).Where("user_id = ?", userId).Find(&meds).Error
	if err != nil {
		return nil, err
	}
	return meds, nil
}

func (s *MedicineService) GetMedicine(id int) (*model.Medicine, error) {
	db := database.GetDB()
	med := &model.Medicine{}
	err := db.First(med, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return med, nil
}

// GetUserMedicine fetches a medicine only if it belongs to the caller.
func (s *MedicineService) GetUserMedicine(id, userId int) (*model.Medicine, error) {
	med, err := s.GetMedicine(id)
	if err != nil {
		return nil, err
	}
	if med.UserId != userId {
		return nil, ErrForbidden
	}
	return med, nil
}

// AddMedicine inserts a new medicine owned by userId.
func (s *MedicineService) AddMedicine(userId int, med *model.Medicine) error {
	if err := validateFields(med); err != nil {
		return err
	}
	med.Id = 0
	med.UserId = userId
	return database.GetDB().Create(med).Error
}

// UpdateMedicine applies fields to an existing medicine owned by userId.
func (s *MedicineService) UpdateMedicine(id, userId int, fields *model.Medicine) error {
	med, err := s.GetUserMedicine(id, userId)
	if err != nil {
		return err
	}
	return s.applyUpdate(med, fields)
}

// AdminUpdateMedicine applies fields to any medicine regardless of
// owner. Admin identity is the only gate; the returned medicine carries
// the owner id for the redirect target.
func (s *MedicineService) AdminUpdateMedicine(id int, fields *model.Medicine) (*model.Medicine, error) {
	med, err := s.GetMedicine(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyUpdate(med, fields); err != nil {
		return nil, err
	}
	return med, nil
}

func (s *MedicineService) applyUpdate(med *model.Medicine, fields *model.Medicine) error {
	fields.Status = med.Status
	if err := validateFields(fields); err != nil {
		return err
	}
	med.Name = fields.Name
	med.Dosage = fields.Dosage
	med.Time = fields.Time
	med.StartDate = fields.StartDate
	med.EndDate = fields.EndDate
	return database.GetDB().Save(med).Error
}

// DeleteMedicine removes a medicine when the caller owns it or acts as
// admin.
func (s *MedicineService) DeleteMedicine(id, callerId int, isAdmin bool) error {
	med, err := s.GetMedicine(id)
	if err != nil {
		return err
	}
	if med.UserId != callerId && !isAdmin {
		return ErrNotFound
	}
	return database.GetDB().Delete(med).Error
}

// UpdateStatus sets the status of a medicine owned by userId. A missing
// or foreign medicine and an unknown status are reported to the caller
// instead of being swallowed.
func (s *MedicineService) UpdateStatus(id, userId int, status string) error {
	if status != model.StatusPending && status != model.StatusTaken {
		return &common.ValidationError{Field: "status", Value: status}
	}
	med, err := s.GetUserMedicine(id, userId)
	if err != nil {
		return err
	}
	med.Status = status
	return database.GetDB().Save(med).Error
}

// MarkTaken sets a medicine owned by userId to Taken. Idempotent; a
// second call reports success again.
func (s *MedicineService) MarkTaken(id, userId int) error {
	return s.UpdateStatus(id, userId, model.StatusTaken)
}

// CheckReminder returns the caller's pending medicines due at hhmm.
// The filter runs in the store against the owner and time columns, not
// as a scan over every pending medicine.
func (s *MedicineService) CheckReminder(userId int, hhmm string) ([]ReminderItem, error) {
	db := database.GetDB()
	var meds []model.Medicine
	err := db.Model(model.Medicine{}).
		Where("user_id = ? AND status = ? AND time = ?", userId, model.StatusPending, hhmm).
		Find(&meds).
		Error
	if err != nil {
		return nil, err
	}
	due := make([]ReminderItem, 0, len(meds))
	for _, m := range meds {
		due = append(due, ReminderItem{Id: m.Id, Name: m.Name, Dosage: m.Dosage})
	}
	return due, nil
}

// RolloverTaken resets Taken medicines whose date range still covers
// today back to Pending, so each day's doses reappear.
func (s *MedicineService) RolloverTaken(today string) (int64, error) {
	db := database.GetDB()
	result := db.Model(model.Medicine{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.StatusTaken, today, today).
		Update("status", model.StatusPending)
	return result.RowsAffected, result.Error
}
