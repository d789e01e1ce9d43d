package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvnage/mvnage/pkg/maven"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mvnage.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// No config file anywhere: point the lookup at an empty directory.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	want := maven.DefaultRepositories()
	if len(cfg.Resolver.Repositories) != len(want) {
		t.Fatalf("repositories = %v", cfg.Resolver.Repositories)
	}
	for i := range want {
		if cfg.Resolver.Repositories[i] != want[i] {
			t.Errorf("repositories[%d] = %q, want %q", i, cfg.Resolver.Repositories[i], want[i])
		}
	}
	if cfg.Resolver.ConnectTimeout.Duration != maven.DefaultConnectTimeout {
		t.Errorf("connect timeout = %v", cfg.Resolver.ConnectTimeout.Duration)
	}
	if cfg.Report.Workers <= 0 {
		t.Errorf("workers = %d", cfg.Report.Workers)
	}
	if cfg.Server.Addr == "" {
		t.Error("server addr should have a default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[resolver]
repositories = [
  "https://mirror.example.com/maven2",
  "https://repo1.maven.org/maven2/",
]
connect_timeout = "2s"
header_timeout = "3s"

[report]
workers = 4

[server]
addr = ":9000"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	// Order in the file is probe priority; missing trailing slash is added.
	want := []string{"https://mirror.example.com/maven2/", "https://repo1.maven.org/maven2/"}
	if len(cfg.Resolver.Repositories) != 2 {
		t.Fatalf("repositories = %v", cfg.Resolver.Repositories)
	}
	for i := range want {
		if cfg.Resolver.Repositories[i] != want[i] {
			t.Errorf("repositories[%d] = %q, want %q", i, cfg.Resolver.Repositories[i], want[i])
		}
	}
	if cfg.Resolver.ConnectTimeout.Duration != 2*time.Second {
		t.Errorf("connect timeout = %v", cfg.Resolver.ConnectTimeout.Duration)
	}
	if cfg.Resolver.HeaderTimeout.Duration != 3*time.Second {
		t.Errorf("header timeout = %v", cfg.Resolver.HeaderTimeout.Duration)
	}
	if cfg.Report.Workers != 4 {
		t.Errorf("workers = %d", cfg.Report.Workers)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":7070"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	// Unset sections keep their defaults.
	if len(cfg.Resolver.Repositories) != len(maven.DefaultRepositories()) {
		t.Errorf("repositories = %v", cfg.Resolver.Repositories)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("explicit missing file", func(t *testing.T) {
		if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for explicitly named missing file")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := writeConfig(t, `[resolver` /* unterminated */)
		if _, err := loadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeConfig(t, `
[resolver]
connect_timeout = "soon"
`)
		if _, err := loadConfig(path); err == nil {
			t.Error("expected error for bad duration")
		}
	})

	t.Run("empty repository", func(t *testing.T) {
		path := writeConfig(t, `
[resolver]
repositories = [""]
`)
		if _, err := loadConfig(path); err == nil {
			t.Error("expected error for empty repository URL")
		}
	})
}

func TestConfigNewResolver(t *testing.T) {
	cfg := defaultConfig()
	client := cfg.newResolver()

	repos := client.Repositories()
	if len(repos) != len(maven.DefaultRepositories()) {
		t.Fatalf("repositories = %v", repos)
	}
	if repos[0] != maven.MavenCentral {
		t.Errorf("repos[0] = %q, want Maven Central first", repos[0])
	}
}
