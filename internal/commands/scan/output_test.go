package scan

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleResult() *Result {
	return &Result{
		Addons: []AddonInfo{
			{
				Dir:          "resource.language.en_gb",
				ManifestPath: "resource.language.en_gb/addon.xml",
				Version:      "1.2.3",
			},
			{
				Dir:     "resource.language.fr_fr",
				Missing: true,
			},
		},
		Languages: []string{"en_gb", "fr_fr"},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"json", FormatJSON},
		{"table", FormatTable},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		if got := ParseOutputFormat(tt.input); got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatText(t *testing.T) {
	out := NewFormatter(FormatText).FormatResult(sampleResult())

	for _, want := range []string{
		"Affected add-ons:",
		"resource.language.en_gb",
		"(1.2.3)",
		"resource.language.fr_fr",
		"(no manifest)",
		"Modified languages:",
		"en_gb, fr_fr",
		"Found: 2 add-on(s), 2 language(s)",
		"1 without manifest",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatText_Empty(t *testing.T) {
	out := NewFormatter(FormatText).FormatResult(&Result{})

	if !strings.Contains(out, "No modified add-ons found.") {
		t.Errorf("unexpected output for empty result:\n%s", out)
	}
}

func TestFormatTable(t *testing.T) {
	out := NewFormatter(FormatTable).FormatResult(sampleResult())

	for _, want := range []string{
		"ADD-ON",
		"VERSION",
		"MANIFEST",
		"resource.language.en_gb/addon.xml",
		"(not found)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	out := NewFormatter(FormatJSON).FormatResult(sampleResult())

	var parsed struct {
		Addons []struct {
			Dir      string `json:"dir"`
			Manifest string `json:"manifest"`
			Version  string `json:"version"`
			Missing  bool   `json:"missing"`
		} `json:"addons"`
		Languages []string `json:"languages"`
		Count     int      `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}

	if parsed.Count != 2 {
		t.Errorf("count = %d, want 2", parsed.Count)
	}
	if len(parsed.Addons) != 2 {
		t.Fatalf("addons length = %d, want 2", len(parsed.Addons))
	}
	if parsed.Addons[0].Version != "1.2.3" {
		t.Errorf("addons[0].version = %q", parsed.Addons[0].Version)
	}
	if !parsed.Addons[1].Missing {
		t.Error("addons[1].missing = false, want true")
	}
	if len(parsed.Languages) != 2 {
		t.Errorf("languages = %v", parsed.Languages)
	}
}

func TestFormatJSON_EmptyResult(t *testing.T) {
	out := NewFormatter(FormatJSON).FormatResult(&Result{})

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}

	if _, ok := parsed["addons"].([]any); !ok {
		t.Errorf("addons should be an array, got %T", parsed["addons"])
	}
	if _, ok := parsed["languages"].([]any); !ok {
		t.Errorf("languages should be an array, got %T", parsed["languages"])
	}
}
