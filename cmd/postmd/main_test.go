package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildTestBinary builds the postmd binary into a temp directory.
func buildTestBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	name := "postmd_test"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	buildCmd := exec.Command("go", "build", "-o", binPath, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return binPath
}

// run executes the binary with an isolated home directory.
func run(t *testing.T, bin, home string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "USERPROFILE="+home, "POSTMD_FORMAT=", "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestCommands(t *testing.T) {
	bin := buildTestBinary(t)
	home := t.TempDir()
	dir := t.TempDir()

	post := filepath.Join(dir, "post.md")
	if err := os.WriteFile(post, []byte("---\ntitle: Sample\n---\n# Sample\nSome `code` and **bold**.\n2. two\n- dash"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "root file argument",
			args:       []string{post},
			wantOutput: []string{"<h1>Sample</h1>", `<ol start="2">`},
		},
		{
			name:       "convert markdown",
			args:       []string{"convert", post, "-f", "markdown"},
			wantOutput: []string{"# Sample", "2. two", "- dash"},
		},
		{
			name:       "convert text",
			args:       []string{"convert", post, "-f", "text", "--wrap", "0"},
			wantOutput: []string{"Sample\n======", "• dash"},
		},
		{
			name:    "convert non-existent file",
			args:    []string{"convert", filepath.Join(dir, "missing.md")},
			wantErr: true,
		},
		{
			name:    "convert unknown format",
			args:    []string{"convert", post, "-f", "pdf"},
			wantErr: true,
		},
		{
			name:       "extract as json",
			args:       []string{"extract", post},
			wantOutput: []string{`"ordered_item"`, `"index": "2"`},
		},
		{
			name:       "extract as text",
			args:       []string{"extract", post, "--format", "text"},
			wantOutput: []string{"제목: Sample"},
		},
		{
			name:       "renderers",
			args:       []string{"renderers"},
			wantOutput: []string{"markdown", "html", "text", "terminal", "json"},
		},
		{
			name:       "version",
			args:       []string{"version"},
			wantOutput: []string{"postmd dev"},
		},
		{
			name:       "config path",
			args:       []string{"config", "path"},
			wantOutput: []string{filepath.Join(".postmd", "config.yaml")},
		},
		{
			name:       "config show",
			args:       []string{"config", "show"},
			wantOutput: []string{"format: html", "POSTMD_FORMAT"},
		},
		{
			name:       "help",
			args:       []string{"--help"},
			wantOutput: []string{"postmd", "convert", "extract", "build", "watch", "renderers", "config"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := run(t, bin, home, tc.args...)

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v\noutput: %s", err, output)
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestBuildCommand(t *testing.T) {
	bin := buildTestBinary(t)
	home := t.TempDir()
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")

	if err := os.MkdirAll(filepath.Join(src, "2024"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"hello.md":      "# Hello",
		"2024/recap.md": "- one\n- two",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	output, err := run(t, bin, home, "build", "--source", src, "--out", out, "-f", "markdown")
	if err != nil {
		t.Fatalf("build failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "2개 변환") {
		t.Errorf("summary should report two files, got: %s", output)
	}

	for _, name := range []string{"hello.md", filepath.Join("2024", "recap.md")} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
}
