package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestShotCommandWritesScreenshots(t *testing.T) {
	dir := t.TempDir()
	out, err := runRoot(t, "shot", "--out", dir, "--width", "480", "--height", "320", "--demo-points", "60", "--log-level", "error")
	if err != nil {
		t.Fatalf("shot: %v", err)
	}
	lines := strings.Fields(strings.TrimSpace(out))
	if len(lines) != 5 {
		t.Fatalf("expected 5 paths, got %d: %q", len(lines), out)
	}
	for _, p := range lines {
		if filepath.Dir(p) != dir {
			t.Fatalf("path %s not under %s", p, dir)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
	}
}

func TestShotCommandReadsCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,10\n2,20\n3,15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "shots")
	if _, err := runRoot(t, "shot", "-f", csvPath, "-o", outDir, "--width", "400", "--height", "300", "--log-level", "error"); err != nil {
		t.Fatalf("shot: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "overview.png")); err != nil {
		t.Fatalf("overview missing: %v", err)
	}
}

func TestShotCommandRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	cases := [][]string{
		{"shot", "-o", dir, "--area", "0.5,0.5,0.8,0.2"},
		{"shot", "-o", dir, "--area", "a,b,c,d"},
		{"shot", "-o", dir, "--width", "0"},
		{"shot", "-o", dir, "--env", filepath.Join(dir, "missing.env")},
		{"shot", "-o", dir, "-f", filepath.Join(dir, "missing.csv")},
		{"shot", "extra-arg"},
	}
	for _, args := range cases {
		if _, err := runRoot(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestLoadColumnsDemo(t *testing.T) {
	cols, source, err := loadColumns("", 25)
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if source != "demo data" || len(cols) != 5 || len(cols[0].Values) != 25 {
		t.Fatalf("unexpected demo load: %q %d", source, len(cols))
	}
}
