package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
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

// defaultSessionSecret mirrors the development fallback; override it with
// IMAGEFORGE_SESSION_SECRET in any real deployment.
const defaultSessionSecret = "dev-secret-key-change-in-production"

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
	logLevel := os.Getenv("IMAGEFORGE_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("IMAGEFORGE_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("IMAGEFORGE_LISTEN")
	if listen == "" {
		listen = ":5000"
	}
	return listen
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("IMAGEFORGE_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("IMAGEFORGE_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetImageFolderPath is the directory generated images are written to. It is
// created on demand by the generation service.
func GetImageFolderPath() string {
	imageFolderPath := os.Getenv("IMAGEFORGE_IMAGE_FOLDER")
	if imageFolderPath == "" {
		imageFolderPath = "static/generated_images"
	}
	return imageFolderPath
}

func GetSessionSecret() string {
	secret := os.Getenv("IMAGEFORGE_SESSION_SECRET")
	if secret == "" {
		secret = defaultSessionSecret
	}
	return secret
}

// GetStabilityAPIKey returns the credential for the image generation API.
// An empty value is not a startup failure; the generation service reports it
// per request.
func GetStabilityAPIKey() string {
	return os.Getenv("STABILITY_API_KEY")
}
