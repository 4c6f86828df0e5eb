package swiftdaddy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestCopyResources(t *testing.T) {
	pc := testContext(t)
	writeFiles(t, pc.RootDir, map[string]string{
		"Resources/images/logo.png": "png",
		"Resources/styles.css":      "site wins",
		"Resources/.DS_Store":       "junk",
	})
	theme := Theme{
		ResourcePaths: []string{"assets/styles.css", "assets/fonts.css"},
		Resources: fstest.MapFS{
			"assets/styles.css": {Data: []byte("theme")},
			"assets/fonts.css":  {Data: []byte("fonts")},
		},
	}
	if err := CopyResources(theme).Run(context.Background(), pc); err != nil {
		t.Fatalf("CopyResources: %v", err)
	}

	tests := []struct {
		rel, want string
	}{
		{"styles.css", "site wins"},
		{"fonts.css", "fonts"},
		{"images/logo.png", "png"},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(pc.OutputPath(tt.rel))
		if err != nil {
			t.Errorf("read %s: %v", tt.rel, err)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("%s = %q, want %q", tt.rel, data, tt.want)
		}
	}
	if pc.HasOutput(".DS_Store") {
		t.Error("dotfiles should not be copied")
	}
}

func TestCopyResourcesMissingThemeFile(t *testing.T) {
	pc := testContext(t)
	theme := Theme{ResourcePaths: []string{"assets/missing.css"}, Resources: fstest.MapFS{}}
	if err := CopyResources(theme).Run(context.Background(), pc); err == nil {
		t.Error("CopyResources should fail for a missing theme resource")
	}
}

func TestCopyResourcesWithoutResourcesDir(t *testing.T) {
	pc := testContext(t)
	if err := CopyResources(Theme{}).Run(context.Background(), pc); err != nil {
		t.Errorf("CopyResources without Resources/ = %v, want nil", err)
	}
}

func TestReplaceTokens(t *testing.T) {
	pc := testContext(t)
	if err := pc.WriteFile("styles.css", []byte("a { color: $accent; background: $accent-light; }")); err != nil {
		t.Fatal(err)
	}
	r := NewTokenReplacement([]string{"styles.css"}, map[string]string{
		"$accent":       "#f00",
		"$accent-light": "#fcc",
	})
	if err := ReplaceTokens(r).Run(context.Background(), pc); err != nil {
		t.Fatalf("ReplaceTokens: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(pc.OutputDir, "styles.css"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "a { color: #f00; background: #fcc; }"; string(data) != want {
		t.Errorf("styles.css = %q, want %q", data, want)
	}
}

func TestReplaceTokensMissingFile(t *testing.T) {
	pc := testContext(t)
	r := NewTokenReplacement([]string{"missing.css"}, map[string]string{"x": "y"})
	if err := ReplaceTokens(r).Run(context.Background(), pc); err == nil {
		t.Error("ReplaceTokens should fail for a file that was not generated")
	}
}

func TestReplaceTokensEmptyIsSkipped(t *testing.T) {
	pc := testContext(t)
	err := ReplaceTokens(TokenReplacement{}).Run(context.Background(), pc)
	if err != errSkipStep {
		t.Errorf("ReplaceTokens(empty) = %v, want errSkipStep", err)
	}
}

func TestWriteFileRejectsEscapingPaths(t *testing.T) {
	pc := testContext(t)
	for _, rel := range []string{"", "..", "../outside.html"} {
		if err := pc.WriteFile(rel, []byte("x")); err == nil {
			t.Errorf("WriteFile(%q) should fail", rel)
		}
	}
	if err := pc.WriteFile("/nested/page.html", []byte("x")); err != nil {
		t.Errorf("WriteFile(/nested/page.html) = %v", err)
	}
	if !pc.HasOutput("nested/page.html") {
		t.Error("HasOutput(nested/page.html) = false")
	}
}
