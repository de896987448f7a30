package changedfiles

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeJSONFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "files.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Array(t *testing.T) {
	path := writeJSONFile(t, `["resource.language.en_gb/resources/strings.po", "README.md"]`)

	files, err := Load(path, "files")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"resource.language.en_gb/resources/strings.po", "README.md"}
	if !slices.Equal(files, want) {
		t.Errorf("Load() = %v, want %v", files, want)
	}
}

func TestLoad_ObjectField(t *testing.T) {
	path := writeJSONFile(t, `{"files": ["resource.language.de_de/resources/strings.po"], "count": 1}`)

	files, err := Load(path, "files")
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || files[0] != "resource.language.de_de/resources/strings.po" {
		t.Errorf("unexpected files: %v", files)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeJSONFile(t, `["unterminated`)

	if _, err := Load(path, "files"); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	} else if !strings.Contains(err.Error(), "malformed JSON") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WrongShape(t *testing.T) {
	path := writeJSONFile(t, `{"paths": ["a"]}`)

	if _, err := Load(path, "files"); err == nil {
		t.Fatal("expected error for missing array field, got nil")
	}
}

func TestLoad_NonStringEntry(t *testing.T) {
	path := writeJSONFile(t, `["resource.language.en_gb/resources/strings.po", 42]`)

	if _, err := Load(path, "files"); err == nil {
		t.Fatal("expected error for non-string entry, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json"), "files"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestAddonDirs(t *testing.T) {
	files := []string{
		"resource.language.en_gb/resources/strings.po",
		"resource.language.en_gb/resources/langinfo.xml",
		"resource.language.de_de/resources/strings.po",
		"metadata.universal/resources/language/resource.language.es_es/strings.po",
		"resource.language.fr_fr/icon.png",   // not a language resource file
		"docs/resource.language.whatever.md", // wrong basename
		"README.md",
	}

	got := AddonDirs(files, "resource.language.")
	want := []string{"metadata.universal", "resource.language.de_de", "resource.language.en_gb"}
	if !slices.Equal(got, want) {
		t.Errorf("AddonDirs() = %v, want %v", got, want)
	}
}

func TestAddonDirs_NoMatches(t *testing.T) {
	files := []string{"README.md", "src/main.cpp"}
	if got := AddonDirs(files, "resource.language."); len(got) != 0 {
		t.Errorf("AddonDirs() = %v, want empty", got)
	}
}

func TestLanguages(t *testing.T) {
	files := []string{
		"resource.language.en_gb/resources/strings.po",
		"resource.language.de_de/resources/strings.po",
		"metadata.universal/resources/language/resource.language.es_es/strings.po",
		"resource.language.de_de/resources/strings.po", // duplicate
	}

	got := Languages(files, "resource.language.")
	want := []string{"de_de", "en_gb", "es_es"}
	if !slices.Equal(got, want) {
		t.Errorf("Languages() = %v, want %v", got, want)
	}
}

func TestSynthesizeAll(t *testing.T) {
	tmp := t.TempDir()
	for _, dir := range []string{"resource.language.en_gb", "resource.language.de_de", "scripts", ".git"} {
		if err := os.Mkdir(filepath.Join(tmp, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(tmp, "resource.language.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	files, err := SynthesizeAll(tmp, "resource.language.")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"resource.language.de_de/resources/strings.po",
		"resource.language.en_gb/resources/strings.po",
	}
	slices.Sort(files)
	if !slices.Equal(files, want) {
		t.Errorf("SynthesizeAll() = %v, want %v", files, want)
	}
}
