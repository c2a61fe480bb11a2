package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"slate/internal/config"
	"slate/internal/daemon"
	"slate/internal/ipc"
	"slate/internal/logging"
	"slate/internal/roles"
	"slate/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	socketPath string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	testsupport.SeedCatalog(t, cfg)

	configPath := filepath.Join(cfg.Paths.LogDir, "config.toml")
	writeTestConfig(t, configPath, cfg)

	store := testsupport.MustOpenCatalog(t, cfg)
	policy, err := roles.NewPolicy(cfg)
	if err != nil {
		t.Fatalf("roles.NewPolicy: %v", err)
	}
	led := testsupport.MustOpenLedger(t, cfg)

	logger := logging.NewNop()
	d, err := daemon.New(cfg, store, policy, led, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := filepath.Join(cfg.Paths.LogDir, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return &cliTestEnv{cfg: cfg, socketPath: socketPath, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLITitlesList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"titles", "list", "--role", "Sales"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("titles list: %v", err)
	}
	for _, want := range []string{"Skybound", "The Harbour Files", "Role Sales", "2 with opportunities"} {
		if !strings.Contains(out, want) {
			t.Fatalf("listing missing %q:\n%s", want, out)
		}
	}

	out, _, err = runCLI(t, []string{"titles", "list", "--search", "beacon", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("titles list --json: %v", err)
	}
	if !strings.Contains(out, `"title_id": "t-005"`) || !strings.Contains(out, `"total": 1`) {
		t.Fatalf("json listing unexpected:\n%s", out)
	}
}

func TestCLITitlesShowSanitizes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"titles", "show", "t-001", "--role", "Viewer"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("titles show: %v", err)
	}
	if strings.Contains(out, "Investment:") {
		t.Fatalf("viewer output leaked investment:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"titles", "show", "t-001", "--role", "Admin"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("titles show admin: %v", err)
	}
	for _, want := range []string{"Investment: £12.5m", "Co-production deal under renegotiation", "Nordstream TV"} {
		if !strings.Contains(out, want) {
			t.Fatalf("admin output missing %q:\n%s", want, out)
		}
	}

	if _, _, err := runCLI(t, []string{"titles", "show", "t-404"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for unknown title")
	}
}

func TestCLIPublishLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"publish", "t-002", "--role", "Marketing"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(out, "the-harbour-files") || !strings.Contains(out, "Marketing") {
		t.Fatalf("publish output unexpected:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"publish", "t-002", "--role", "Viewer"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("viewer publish must fail")
	}

	out, _, err = runCLI(t, []string{"unpublish", "t-002", "--role", "Marketing"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if !strings.Contains(out, "Unpublished t-002") {
		t.Fatalf("unpublish output unexpected:\n%s", out)
	}
}

func TestCLIRolesAndStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"roles"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("roles: %v", err)
	}
	for _, want := range []string{"Admin", "Marketing", "Sales", "Viewer"} {
		if !strings.Contains(out, want) {
			t.Fatalf("roles output missing %q:\n%s", want, out)
		}
	}

	out, _, err = runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "5 loaded") {
		t.Fatalf("status output unexpected:\n%s", out)
	}
}

func TestCLIConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("config init output unexpected:\n%s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
}

func TestCLIConfigShowAndPath(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "sales_base_url") || !strings.Contains(out, env.cfg.Catalog.TitlesPath) {
		t.Fatalf("config show output unexpected:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"config", "path"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, env.configPath) {
		t.Fatalf("config path output = %q, want %q", out, env.configPath)
	}
}

func TestCLIDialErrorMentionsDaemon(t *testing.T) {
	env := setupCLITestEnv(t)

	missing := filepath.Join(t.TempDir(), "absent.sock")
	_, _, err := runCLI(t, []string{"status"}, missing, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "slated") {
		t.Fatalf("err = %v, want hint to start slated", err)
	}
}
