package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("PILLBOX_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("PILLBOX_DEBUG") == "true"
}

// IsDBReset reports whether the operator explicitly asked for the
// database file to be wiped before startup. Destructive, off by default.
func IsDBReset() bool {
	return os.Getenv("PILLBOX_RESET_DB") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("PILLBOX_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("PILLBOX_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("PILLBOX_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("PILLBOX_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

func GetSessionSecret() string {
	return os.Getenv("PILLBOX_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	age, err := strconv.Atoi(os.Getenv("PILLBOX_SESSION_MAX_AGE"))
	if err != nil || age <= 0 {
		return 60
	}
	return age
}

func GetAdminEmail() string {
	email := os.Getenv("PILLBOX_ADMIN_EMAIL")
	if email == "" {
		email = "admin@pillbox.local"
	}
	return strings.ToLower(strings.TrimSpace(email))
}

func GetAdminPassword() string {
	password := os.Getenv("PILLBOX_ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	return password
}
