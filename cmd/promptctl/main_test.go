package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	for _, want := range []string{"NAME", "ordering", "message, history, menu, ingredients", "image_prompt", "dish_name"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWithSet(t *testing.T) {
	out, _, err := execute(t, "", "render", "image_prompt", "--set", "dish_name=Pad Thai")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "Pad Thai") {
		t.Fatalf("render output missing dish name:\n%s", out)
	}
}

func TestRenderWithVarsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	vars := "dish_name: Biryani\ncuisine: Indian\ningredients:\n  - name: Rice\n    quantity: 5\n"
	if err := os.WriteFile(path, []byte(vars), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "render", "dish_reengineering", "--vars", path, "--set", "cuisine=Mughlai")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, want := range []string{"Biryani", "Mughlai", `"name":"Rice"`} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Indian") {
		t.Errorf("--set did not override the vars file:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown template", args: []string{"render", "nope"}},
		{name: "missing variable", args: []string{"render", "image_prompt"}},
		{name: "bad set", args: []string{"render", "image_prompt", "--set", "dish_name"}},
		{name: "missing vars file", args: []string{"render", "image_prompt", "--vars", "/does/not/exist.yaml"}},
		{name: "no name", args: []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, "", tt.args...); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestClean(t *testing.T) {
	out, errOut, err := execute(t, "Sure!\n```json\n{'dish': 'Pho', 'spicy': True,}\n```\n", "clean")
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if strings.TrimSpace(out) != `{"dish": "Pho", "spicy": true}` {
		t.Fatalf("clean output = %q", out)
	}
	if !strings.Contains(errOut, "result: structured") {
		t.Fatalf("stderr = %q", errOut)
	}

	out, errOut, err = execute(t, "Just a sentence.\n", "clean")
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if strings.TrimSpace(out) != "Just a sentence." || !strings.Contains(errOut, "result: raw") {
		t.Fatalf("clean = %q / %q", out, errOut)
	}
}
