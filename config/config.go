package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func init() {
	_ = godotenv.Load()
}

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
	logLevel := os.Getenv("MARKET_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("MARKET_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("MARKET_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("MARKET_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

func GetWebDomain() string {
	return os.Getenv("MARKET_DOMAIN")
}

// GetSecret returns the session signing secret. There is no default: when
// empty the web server generates a random secret at startup, which
// invalidates all sessions across restarts.
func GetSecret() string {
	return os.Getenv("MARKET_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	minutes, err := strconv.Atoi(os.Getenv("MARKET_SESSION_MAX_AGE"))
	if err != nil || minutes <= 0 {
		return 60
	}
	return minutes
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("MARKET_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

// GetStaticFolderPath returns the folder served under /images: catalog
// pictures at its root, uploaded avatars in the uploads subfolder.
func GetStaticFolderPath() string {
	staticFolderPath := os.Getenv("MARKET_STATIC_FOLDER")
	if staticFolderPath == "" {
		staticFolderPath = "static/images"
	}
	return staticFolderPath
}

func GetUploadFolderPath() string {
	return filepath.Join(GetStaticFolderPath(), "uploads")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("MARKET_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}
