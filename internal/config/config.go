package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/seva/shipper/server/internal/deploy"
)

// Config carries everything the server needs: credentials for the two
// remote systems, the shared secret guarding the API, and the listen
// address. Built once at startup and threaded into construction; nothing
// below main reads the environment.
type Config struct {
	Addr        string
	SecretKey   string
	GitHubToken string
	FTP         deploy.Target
	UploadRoot  string
}

// FromEnv builds a Config from the process environment. The first missing
// required variable is reported as the error.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:       ":8080",
		UploadRoot: "/htdocs",
	}
	for _, v := range []struct {
		name string
		dst  *string
	}{
		{"SHIPPER_SECRET", &cfg.SecretKey},
		{"SHIPPER_GITHUB_TOKEN", &cfg.GitHubToken},
		{"SHIPPER_FTP_HOST", &cfg.FTP.Addr},
		{"SHIPPER_FTP_USER", &cfg.FTP.User},
		{"SHIPPER_FTP_PASSWORD", &cfg.FTP.Password},
	} {
		val := os.Getenv(v.name)
		if val == "" {
			return nil, fmt.Errorf("%s not set", v.name)
		}
		*v.dst = val
	}
	if !strings.Contains(cfg.FTP.Addr, ":") {
		cfg.FTP.Addr += ":21"
	}
	if root := os.Getenv("SHIPPER_FTP_ROOT"); root != "" {
		cfg.UploadRoot = root
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	return cfg, nil
}
