package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"pillbox/config"
	"pillbox/database/model"
	"pillbox/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Medicine{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initAdmin seeds the administrative account when no admin-role user
// exists yet. Existing data is never touched; migration is idempotent.
func initAdmin() error {
	var count int64
	err := db.Model(model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPasswordAsBcrypt(config.GetAdminPassword())
	if err != nil {
		return err
	}
	admin := &model.User{
		Email:    config.GetAdminEmail(),
		Password: hash,
		Role:     model.RoleAdmin,
	}
	return db.Create(admin).Error
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger: gormLogger,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	if err := initAdmin(); err != nil {
		return err
	}

	return nil
}

// ResetDB removes the database file. Destructive, only reached through
// the explicit opt-in flag; a missing file is not an error.
func ResetDB(dbPath string) error {
	err := os.Remove(dbPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
