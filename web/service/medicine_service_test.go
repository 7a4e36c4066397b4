package service

import (
	"testing"

	"pillbox/database/model"
	"pillbox/util/common"

	"github.com/stretchr/testify/assert"
)

func registerTestUser(t *testing.T, email string) *model.User {
	t.Helper()
	userService := UserService{}
	if err := userService.Register(email, "secret"); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	user, err := userService.Login(email, "secret")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return user
}

func TestMedicineOwnershipIsolation(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	bob := registerTestUser(t, "bob@example.com")

	med := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")

	aliceMeds, err := medicineService.GetMedicines(alice.Id)
	assert.NoError(t, err)
	assert.Len(t, aliceMeds, 1)
	assert.Equal(t, med.Id, aliceMeds[0].Id)

	bobMeds, err := medicineService.GetMedicines(bob.Id)
	assert.NoError(t, err)
	assert.Len(t, bobMeds, 0)

	// bob cannot load or edit alice's medicine
	_, err = medicineService.GetUserMedicine(med.Id, bob.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	err = medicineService.UpdateMedicine(med.Id, bob.Id, &model.Medicine{
		Name: "Hijacked", Dosage: "1g", Time: "09:00",
		StartDate: "2024-01-01", EndDate: "2024-12-31",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMedicineValidation(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")

	var valErr *common.ValidationError

	err := medicineService.AddMedicine(alice.Id, &model.Medicine{
		Name: "Aspirin", Time: "25:99",
		StartDate: "2024-01-01", EndDate: "2024-01-10",
	})
	assert.ErrorAs(t, err, &valErr)

	err = medicineService.AddMedicine(alice.Id, &model.Medicine{
		Name: "Aspirin", Time: "08:00",
		StartDate: "not-a-date", EndDate: "2024-01-10",
	})
	assert.ErrorAs(t, err, &valErr)

	// end before start
	err = medicineService.AddMedicine(alice.Id, &model.Medicine{
		Name: "Aspirin", Time: "08:00",
		StartDate: "2024-01-10", EndDate: "2024-01-01",
	})
	assert.ErrorAs(t, err, &valErr)

	err = medicineService.AddMedicine(alice.Id, &model.Medicine{
		Name: "Aspirin", Time: "08:00", Status: "Snoozed",
		StartDate: "2024-01-01", EndDate: "2024-01-10",
	})
	assert.ErrorAs(t, err, &valErr)

	meds, err := medicineService.GetMedicines(alice.Id)
	assert.NoError(t, err)
	assert.Len(t, meds, 0)
}

func TestUpdateMedicine(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	med := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")

	err := medicineService.UpdateMedicine(med.Id, alice.Id, &model.Medicine{
		Name: "Aspirin Forte", Dosage: "200mg", Time: "09:30",
		StartDate: "2024-02-01", EndDate: "2024-03-01",
	})
	assert.NoError(t, err)

	updated, err := medicineService.GetMedicine(med.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Aspirin Forte", updated.Name)
	assert.Equal(t, "09:30", updated.Time)
	assert.Equal(t, model.StatusPending, updated.Status)

	err = medicineService.UpdateMedicine(4242, alice.Id, &model.Medicine{
		Name: "Missing", Time: "09:30",
		StartDate: "2024-02-01", EndDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckReminder(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	bob := registerTestUser(t, "bob@example.com")

	due := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")
	addTestMedicine(t, &medicineService, alice.Id, "Ibuprofen", "12:00")
	addTestMedicine(t, &medicineService, bob.Id, "Vitamin D", "08:00")

	taken := addTestMedicine(t, &medicineService, alice.Id, "Paracetamol", "08:00")
	assert.NoError(t, medicineService.MarkTaken(taken.Id, alice.Id))

	items, err := medicineService.CheckReminder(alice.Id, "08:00")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, due.Id, items[0].Id)
	assert.Equal(t, "Aspirin", items[0].Name)
	assert.Equal(t, "100mg", items[0].Dosage)

	items, err = medicineService.CheckReminder(alice.Id, "08:01")
	assert.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestMarkTakenIdempotent(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	med := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")

	assert.NoError(t, medicineService.MarkTaken(med.Id, alice.Id))
	assert.NoError(t, medicineService.MarkTaken(med.Id, alice.Id))

	updated, err := medicineService.GetMedicine(med.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusTaken, updated.Status)
}

func TestMarkTakenForeignMedicine(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	bob := registerTestUser(t, "bob@example.com")
	med := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")

	err := medicineService.MarkTaken(med.Id, bob.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	unchanged, err := medicineService.GetMedicine(med.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, unchanged.Status)

	err = medicineService.MarkTaken(4242, bob.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusSurfacesFailure(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	med := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")

	err := medicineService.UpdateStatus(4242, alice.Id, model.StatusTaken)
	assert.ErrorIs(t, err, ErrNotFound)

	var valErr *common.ValidationError
	err = medicineService.UpdateStatus(med.Id, alice.Id, "Snoozed")
	assert.ErrorAs(t, err, &valErr)

	err = medicineService.UpdateStatus(med.Id, alice.Id, model.StatusTaken)
	assert.NoError(t, err)
	err = medicineService.UpdateStatus(med.Id, alice.Id, model.StatusPending)
	assert.NoError(t, err)
}

func TestDeleteMedicine(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	bob := registerTestUser(t, "bob@example.com")

	mine := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")
	foreign := addTestMedicine(t, &medicineService, alice.Id, "Ibuprofen", "12:00")

	assert.NoError(t, medicineService.DeleteMedicine(mine.Id, alice.Id, false))
	_, err := medicineService.GetMedicine(mine.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	// not the owner and not admin
	err = medicineService.DeleteMedicine(foreign.Id, bob.Id, false)
	assert.ErrorIs(t, err, ErrNotFound)

	// admin may delete anyone's medicine
	assert.NoError(t, medicineService.DeleteMedicine(foreign.Id, 0, true))
}

func TestAdminUpdateMedicine(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")
	med := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")

	updated, err := medicineService.AdminUpdateMedicine(med.Id, &model.Medicine{
		Name: "Aspirin", Dosage: "500mg", Time: "10:00",
		StartDate: "2024-01-01", EndDate: "2024-06-30",
	})
	assert.NoError(t, err)
	assert.Equal(t, alice.Id, updated.UserId)
	assert.Equal(t, "500mg", updated.Dosage)

	_, err = medicineService.AdminUpdateMedicine(4242, &model.Medicine{
		Name: "Missing", Time: "10:00",
		StartDate: "2024-01-01", EndDate: "2024-06-30",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRolloverTaken(t *testing.T) {
	setup()
	defer teardown()

	medicineService := MedicineService{}
	alice := registerTestUser(t, "alice@example.com")

	active := addTestMedicine(t, &medicineService, alice.Id, "Aspirin", "08:00")
	assert.NoError(t, medicineService.MarkTaken(active.Id, alice.Id))

	expired := &model.Medicine{
		Name: "Old Med", Dosage: "5mg", Time: "08:00",
		StartDate: "2024-01-01", EndDate: "2024-01-10",
	}
	assert.NoError(t, medicineService.AddMedicine(alice.Id, expired))
	assert.NoError(t, medicineService.MarkTaken(expired.Id, alice.Id))

	n, err := medicineService.RolloverTaken("2024-06-15")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)

	rolled, _ := medicineService.GetMedicine(active.Id)
	assert.Equal(t, model.StatusPending, rolled.Status)

	kept, _ := medicineService.GetMedicine(expired.Id)
	assert.Equal(t, model.StatusTaken, kept.Status)
}
