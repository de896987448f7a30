package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const manifestFixture = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<addon id="%ID%" name="Language pack" version="1.0.0" provider-name="Team Kodi">
	<extension point="kodi.resource.language" />
</addon>
`

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	return tmp
}

func writeAddon(t *testing.T, id string) {
	t.Helper()
	if err := os.MkdirAll(id, 0755); err != nil {
		t.Fatal(err)
	}
	content := strings.ReplaceAll(manifestFixture, "%ID%", id)
	if err := os.WriteFile(filepath.Join(id, "addon.xml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCLI_BumpWithReport(t *testing.T) {
	chdirTemp(t)
	writeAddon(t, "resource.language.en_gb")
	writeAddon(t, "resource.language.de_de")

	files := `{"files": [
		"resource.language.en_gb/resources/strings.po",
		"resource.language.de_de/resources/langinfo.xml"
	]}`
	if err := os.WriteFile("files.json", []byte(files), 0644); err != nil {
		t.Fatal(err)
	}

	err := runCLI([]string{"addonbump", "bump", "--yes", "--report", "report.json", "files.json"})
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"resource.language.en_gb", "resource.language.de_de"} {
		content, err := os.ReadFile(filepath.Join(dir, "addon.xml"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), `version="1.0.1"`) {
			t.Errorf("%s not bumped:\n%s", dir, content)
		}
	}

	data, err := os.ReadFile("report.json")
	if err != nil {
		t.Fatal(err)
	}
	doc := gjson.ParseBytes(data)
	if got := doc.Get("count").Int(); got != 2 {
		t.Errorf("report count = %d, want 2", got)
	}
	if got := doc.Get("addons.0.version").String(); got != "1.0.1" {
		t.Errorf("report addons.0.version = %q", got)
	}
}

func TestRunCLI_NoAffectedAddons(t *testing.T) {
	chdirTemp(t)
	writeAddon(t, "resource.language.en_gb")

	if err := os.WriteFile("files.json", []byte(`["README.md"]`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI([]string{"addonbump", "bump", "--yes", "files.json"}); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join("resource.language.en_gb", "addon.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `version="1.0.0"`) {
		t.Errorf("manifest modified on unrelated input:\n%s", content)
	}
}

func TestRunCLI_MalformedInput(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("files.json", []byte(`{"files": "oops"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI([]string{"addonbump", "bump", "--yes", "files.json"}); err == nil {
		t.Fatal("expected error for malformed changed-files JSON, got nil")
	}
}

func TestRunCLI_ConfigError(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile(".addonbump.yaml", []byte("no-such-key: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI([]string{"addonbump", "scan", "files.json"}); err == nil {
		t.Fatal("expected config error, got nil")
	}
}

func TestRunCLI_Scan(t *testing.T) {
	chdirTemp(t)
	writeAddon(t, "resource.language.en_gb")

	files := `["resource.language.en_gb/resources/strings.po"]`
	if err := os.WriteFile("files.json", []byte(files), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI([]string{"addonbump", "scan", "--format", "json", "files.json"}); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join("resource.language.en_gb", "addon.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `version="1.0.0"`) {
		t.Errorf("scan modified the manifest:\n%s", content)
	}
}
