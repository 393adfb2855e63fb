package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tubescript/internal/config"
	"tubescript/internal/testsupport"
)

const testVideoID = "dQw4w9WgXcQ"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	server     *httptest.Server
}

// setupCLITestEnv writes a scrape-strategy config pointing at a fake watch
// page that offers a German and an English track.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"TUBESCRIPT_STRATEGY", "YOUTUBE_CLIENT_ID", "TUBESCRIPT_API_TOKEN", "TUBESCRIPT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != testVideoID {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testsupport.WatchPage(fmt.Sprintf(
			`[{"baseUrl":"%[1]s/api/timedtext?lang=de","languageCode":"de","name":{"simpleText":"German"}},`+
				`{"baseUrl":"%[1]s/api/timedtext?lang=en","languageCode":"en","kind":"asr","name":{"simpleText":"English (auto-generated)"}}]`,
			server.URL)))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") != "en" {
			http.Error(w, "wrong track", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, testsupport.TimedText("Never gonna", "give you up"))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t,
		testsupport.WithStrategy(config.StrategyScrape),
		testsupport.WithWatchURL(server.URL+"/watch"),
	)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, server: server}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	testsupport.WriteFile(t, path, string(data))
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	fullArgs := []string{"--env-file", ""}
	if configPath != "" {
		fullArgs = append(fullArgs, "--config", configPath)
	}
	cmd.SetArgs(append(fullArgs, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\nfull output:\n%s", needle, haystack)
	}
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}
