package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Setenv("SHIPPER_SECRET", "s3cret")
	t.Setenv("SHIPPER_GITHUB_TOKEN", "ghp_x")
	t.Setenv("SHIPPER_FTP_HOST", "ftp.example.com")
	t.Setenv("SHIPPER_FTP_USER", "deploy")
	t.Setenv("SHIPPER_FTP_PASSWORD", "pw")
	t.Setenv("SHIPPER_FTP_ROOT", "")
	t.Setenv("PORT", "")
}

func TestFromEnv(t *testing.T) {
	setRequired(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.SecretKey != "s3cret" || cfg.GitHubToken != "ghp_x" {
		t.Errorf("credentials: %+v", cfg)
	}
	if cfg.FTP.Addr != "ftp.example.com:21" {
		t.Errorf("FTP addr = %q, want default port appended", cfg.FTP.Addr)
	}
	if cfg.FTP.User != "deploy" || cfg.FTP.Password != "pw" {
		t.Errorf("FTP credentials: %+v", cfg.FTP)
	}
	if cfg.UploadRoot != "/htdocs" {
		t.Errorf("UploadRoot = %q, want /htdocs", cfg.UploadRoot)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
}

func TestFromEnv_overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SHIPPER_FTP_HOST", "ftp.example.com:2121")
	t.Setenv("SHIPPER_FTP_ROOT", "/www")
	t.Setenv("PORT", "9000")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.FTP.Addr != "ftp.example.com:2121" {
		t.Errorf("FTP addr = %q", cfg.FTP.Addr)
	}
	if cfg.UploadRoot != "/www" || cfg.Addr != ":9000" {
		t.Errorf("overrides: %+v", cfg)
	}
}

func TestFromEnv_missing(t *testing.T) {
	setRequired(t)
	t.Setenv("SHIPPER_GITHUB_TOKEN", "")
	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "SHIPPER_GITHUB_TOKEN") {
		t.Errorf("error should name the variable: %v", err)
	}
}
