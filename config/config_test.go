package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	t.Setenv("LITEX_CONFIG_DIR", t.TempDir())
	t.Setenv("LITEX_TOOLCHAIN_PATH", "")

	config := loadConfiguration()
	if len(config.ToolchainPath) != 0 {
		t.Fatalf("unexpected toolchain path: %v", config.ToolchainPath)
	}
}

func TestLoadConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	contents := "toolchain_path:\n  - /opt/oss-cad-suite/bin\n  - /opt/fpga/bin\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0664); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LITEX_CONFIG_DIR", dir)
	t.Setenv("LITEX_TOOLCHAIN_PATH", "")

	config := loadConfiguration()
	if len(config.ToolchainPath) != 2 {
		t.Fatalf("unexpected toolchain path: %v", config.ToolchainPath)
	}
	if config.ToolchainPath[0] != "/opt/oss-cad-suite/bin" || config.ToolchainPath[1] != "/opt/fpga/bin" {
		t.Fatalf("unexpected toolchain path: %v", config.ToolchainPath)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	dir := t.TempDir()
	contents := "toolchain_path:\n  - /opt/from-file/bin\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0664); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LITEX_CONFIG_DIR", dir)
	t.Setenv("LITEX_TOOLCHAIN_PATH", "/opt/a/bin"+string(os.PathListSeparator)+"/opt/b/bin")

	config := loadConfiguration()
	if len(config.ToolchainPath) != 2 {
		t.Fatalf("unexpected toolchain path: %v", config.ToolchainPath)
	}
	if config.ToolchainPath[0] != "/opt/a/bin" || config.ToolchainPath[1] != "/opt/b/bin" {
		t.Fatalf("unexpected toolchain path: %v", config.ToolchainPath)
	}
}
