package dispatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// writeManifest writes a plugin.json under dir/name and returns the
// plugin directory.
func writeManifest(t *testing.T, dir, name string, manifest Manifest) string {
	t.Helper()

	pluginDir := filepath.Join(dir, name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	return pluginDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()

	writeManifest(t, tmpDir, "shell", Manifest{
		Name:        "shell",
		Version:     "1.0.0",
		Description: "Runs shell commands",
		Executable:  "shell",
		Actions:     []string{"run"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	plugin := plugins[0]
	if plugin.Manifest.Name != "shell" {
		t.Errorf("expected plugin name 'shell', got %q", plugin.Manifest.Name)
	}
	if plugin.Executable != filepath.Join(tmpDir, "shell", "shell") {
		t.Errorf("unexpected executable path %q", plugin.Executable)
	}
}

func TestManager_Discover_MissingDirectory(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() on missing dir failed: %v", err)
	}
	if len(manager.List()) != 0 {
		t.Error("expected no plugins from a missing directory")
	}
}

func TestManager_Discover_SkipsInvalidManifests(t *testing.T) {
	tmpDir := t.TempDir()

	// One valid plugin
	writeManifest(t, tmpDir, "good", Manifest{Name: "good", Executable: "good"})

	// One with broken JSON
	badDir := filepath.Join(tmpDir, "bad")
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "plugin.json"), []byte("{broken"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	// One without a manifest at all
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}
	if plugins[0].Manifest.Name != "good" {
		t.Errorf("expected plugin 'good', got %q", plugins[0].Manifest.Name)
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "shell", Manifest{Name: "shell", Executable: "shell"})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugin, err := manager.Get("shell")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if plugin.Manifest.Name != "shell" {
		t.Errorf("expected plugin 'shell', got %q", plugin.Manifest.Name)
	}

	if _, err := manager.Get("missing"); err != ErrPluginNotFound {
		t.Errorf("Get() error = %v, want ErrPluginNotFound", err)
	}
}
