package main

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireFile(t, target)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigShowMasksAPIToken(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("TUBESCRIPT_API_TOKEN", "super-secret")

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "super-secret") {
		t.Fatalf("token leaked into output:\n%s", out)
	}
	requireStrategy(t, out, "scrape")
	requireContains(t, out, "********")
}

func TestStrategyFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--strategy", "page", "config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireStrategy(t, out, "page")

	_, _, err = runCLI(t, []string{"--strategy", "carrier-pigeon", "config", "show"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--strategy must be one of") {
		t.Fatalf("expected strategy validation error, got %v", err)
	}
}

func TestAPIStrategyWithoutClientIDFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--strategy", "api", "config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("test config carries a client id, validate should pass: %v", err)
	}

	cfg := *env.cfg
	cfg.Auth.ClientID = ""
	path := filepath.Join(t.TempDir(), "no-client.toml")
	writeTestConfig(t, path, &cfg)
	_, _, err = runCLI(t, []string{"--strategy", "api", "tracks", testVideoID}, path)
	if err == nil || !strings.Contains(err.Error(), "client_id") {
		t.Fatalf("expected client_id error, got %v", err)
	}
}

func requireStrategy(t *testing.T, out, want string) {
	t.Helper()
	pattern := regexp.MustCompile(`(?m)^\s*strategy\s*=\s*['"]` + want + `['"]`)
	if !pattern.MatchString(out) {
		t.Fatalf("expected strategy %q in:\n%s", want, out)
	}
}

func TestConfigInitClientIDAndStdout(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "init", "--stdout", "--client-id", "abc.apps.googleusercontent.com"}, "")
	if err != nil {
		t.Fatalf("config init --stdout: %v", err)
	}
	requireContains(t, out, `client_id = "abc.apps.googleusercontent.com"`)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target, "--client-id", "abc.apps.googleusercontent.com"}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if strings.Contains(out, "Set auth.client_id") {
		t.Fatalf("client id hint should be skipped when provided:\n%s", out)
	}
	out, _, err = runCLI(t, []string{"--strategy", "api", "config", "show"}, target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "abc.apps.googleusercontent.com")
}
