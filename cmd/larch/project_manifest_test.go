package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "larch.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadProjectManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[check]\nentry = \"src/main.lr\"\n")

	m, ok, err := loadProjectManifest(dir)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if got, want := m.EntryPath(), filepath.Join(m.Root, "src", "main.lr"); got != want {
		t.Fatalf("entry = %q, want %q", got, want)
	}
}

func TestFindLarchTomlWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[check]\nentry = \"main.lr\"\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := findLarchToml(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(dir, "larch.toml") {
		t.Fatalf("path = %q", path)
	}
}

func TestCheckTargetsMergeIncludes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main.lr", "extra.lr", "util_a.lr", "util_b.lr"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("42"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	writeManifest(t, dir,
		"[package]\nname = \"demo\"\n\n[check]\nentry = \"main.lr\"\ninclude = [\"extra.lr\", \"util_*.lr\"]\n")

	m, ok, err := loadProjectManifest(dir)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	targets, err := m.CheckTargets()
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	want := []string{
		filepath.Join(dir, "main.lr"),
		filepath.Join(dir, "extra.lr"),
		filepath.Join(dir, "util_a.lr"),
		filepath.Join(dir, "util_b.lr"),
	}
	if len(targets) != len(want) {
		t.Fatalf("targets = %v, want %v", targets, want)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Fatalf("targets[%d] = %q, want %q", i, targets[i], want[i])
		}
	}
}

func TestCheckTargetsKeepLiteralMissingInclude(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir,
		"[package]\nname = \"demo\"\n\n[check]\nentry = \"main.lr\"\ninclude = [\"gone.lr\", \"nomatch_*.lr\"]\n")

	m, _, err := loadProjectManifest(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	targets, err := m.CheckTargets()
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	// The literal path stays so the missing file is reported downstream;
	// the unmatched glob drops out.
	want := []string{filepath.Join(dir, "main.lr"), filepath.Join(dir, "gone.lr")}
	if len(targets) != 2 || targets[0] != want[0] || targets[1] != want[1] {
		t.Fatalf("targets = %v, want %v", targets, want)
	}
}

func TestManifestRejectsEmptyIncludeEntry(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir,
		"[package]\nname = \"demo\"\n\n[check]\nentry = \"main.lr\"\ninclude = [\"\"]\n")
	if _, _, err := loadProjectManifest(dir); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestManifestRequiresPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[check]\nentry = \"main.lr\"\n")
	if _, _, err := loadProjectManifest(dir); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestManifestRequiresCheckEntry(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	if _, _, err := loadProjectManifest(dir); err == nil {
		t.Fatal("expected a validation error")
	}
}
