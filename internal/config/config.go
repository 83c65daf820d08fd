package config

import (
	"os"
	"strings"
)

// DevSessionSecret is used when SESSION_SECRET is not set. main logs a
// warning when it ends up in use.
const DevSessionSecret = "dev-secret-change-me"

type Config struct {
	Addr          string
	DBPath        string
	SessionSecret string

	// Optional bootstrap admin, created on startup when both are set.
	AdminEmail    string
	AdminPassword string
}

func FromEnv() Config {
	var c Config
	c.Addr = strings.TrimSpace(os.Getenv("ADDR"))
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	c.DBPath = strings.TrimSpace(os.Getenv("WFS_DB"))
	if c.DBPath == "" {
		c.DBPath = "wfs.db"
	}
	c.SessionSecret = strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if c.SessionSecret == "" {
		c.SessionSecret = DevSessionSecret
	}
	c.AdminEmail = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	c.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	return c
}
