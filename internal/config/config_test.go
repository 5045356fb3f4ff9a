package config

import (
	"strings"
	"testing"

	"github.com/devflow-tools/wtm/internal/system"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	system.SetDefaultFS(system.NewMockFS())
	defer system.ResetDefaults()

	cfg, err := Load("/home/user/.config/wtm/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Worktree.BaseDir != ".." {
		t.Errorf("BaseDir = %q, want %q", cfg.Worktree.BaseDir, "..")
	}
	if len(cfg.Discovery.Dirs) != 1 || cfg.Discovery.Dirs[0] != "docs" {
		t.Errorf("Dirs = %v, want [docs]", cfg.Discovery.Dirs)
	}
	if len(cfg.Discovery.Ignore) != 3 {
		t.Errorf("Ignore = %v, want the three noise names", cfg.Discovery.Ignore)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	mfs := system.NewMockFS()
	mfs.AddFile("/cfg/config.toml", []byte(`
[worktree]
base_dir = "../trees"
branch_prefix = "wtm/"
editor = "vim -p"

[discovery]
dirs = ["docs", "memory"]
ignore = []
`), 0644)
	system.SetDefaultFS(mfs)
	defer system.ResetDefaults()

	cfg, err := Load("/cfg/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Worktree.BaseDir != "../trees" {
		t.Errorf("BaseDir = %q", cfg.Worktree.BaseDir)
	}
	if cfg.Worktree.BranchPrefix != "wtm/" {
		t.Errorf("BranchPrefix = %q", cfg.Worktree.BranchPrefix)
	}
	if cfg.Worktree.Editor != "vim -p" {
		t.Errorf("Editor = %q", cfg.Worktree.Editor)
	}
	if len(cfg.Discovery.Dirs) != 2 {
		t.Errorf("Dirs = %v", cfg.Discovery.Dirs)
	}
	// Explicit empty list disables the default noise filter.
	if len(cfg.Discovery.Ignore) != 0 {
		t.Errorf("Ignore = %v, want empty", cfg.Discovery.Ignore)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	mfs := system.NewMockFS()
	mfs.AddFile("/cfg/config.toml", []byte(`
[worktree]
editor = "subl -w"
`), 0644)
	system.SetDefaultFS(mfs)
	defer system.ResetDefaults()

	cfg, err := Load("/cfg/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Worktree.Editor != "subl -w" {
		t.Errorf("Editor = %q", cfg.Worktree.Editor)
	}
	if cfg.Worktree.BaseDir != ".." {
		t.Errorf("BaseDir should default, got %q", cfg.Worktree.BaseDir)
	}
	if len(cfg.Discovery.Dirs) != 1 || cfg.Discovery.Dirs[0] != "docs" {
		t.Errorf("Dirs should default, got %v", cfg.Discovery.Dirs)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	mfs := system.NewMockFS()
	mfs.AddFile("/cfg/config.toml", []byte(`[worktree`), 0644)
	system.SetDefaultFS(mfs)
	defer system.ResetDefaults()

	if _, err := Load("/cfg/config.toml"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "absolute discovery dir",
			mutate:  func(c *Config) { c.Discovery.Dirs = []string{"/etc"} },
			wantErr: "relative",
		},
		{
			name:    "branch prefix with traversal",
			mutate:  func(c *Config) { c.Worktree.BranchPrefix = "../x" },
			wantErr: "branch_prefix",
		},
		{
			name:   "slash in branch prefix is allowed",
			mutate: func(c *Config) { c.Worktree.BranchPrefix = "feature/" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
