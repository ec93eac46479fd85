package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "storage:\n  base_dir: " + dir + "\n  sync_on_write: false\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, dir
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestCommands_EndToEnd(t *testing.T) {
	cfg, dir := writeConfig(t)

	out := execute(t, "", "summary", "--config", cfg)
	if !strings.Contains(out, "No entries logged yet.") {
		t.Errorf("unexpected empty summary %q", out)
	}

	out = execute(t, "1\ngrill\ntrim\nsteak\nlbs\n2\nfat cap\n5\n", "--config", cfg)
	if !strings.Contains(out, "Entry saved.") {
		t.Fatalf("entry not saved:\n%s", out)
	}

	out = execute(t, "", "summary", "--config", cfg)
	if !strings.Contains(out, "Total entries: 1") || !strings.Contains(out, "Weight: 2.00 lbs") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	out = execute(t, "", "summary", "--raw", "--config", cfg)
	if !strings.Contains(out, "By unit:") {
		t.Errorf("unexpected raw summary:\n%s", out)
	}

	xlsx := filepath.Join(dir, "out.xlsx")
	out = execute(t, "", "export", "-o", xlsx, "--config", cfg)
	if !strings.Contains(out, "(1 rows)") {
		t.Errorf("unexpected export output %q", out)
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Errorf("workbook missing: %v", err)
	}

	out = execute(t, "", "repair", "--config", cfg)
	if !strings.Contains(out, "Log is clean: 1 entries.") {
		t.Errorf("unexpected repair output %q", out)
	}
}

func TestCommands_RepairDropsCorruptLines(t *testing.T) {
	cfg, dir := writeConfig(t)
	execute(t, "1\npasta\nspoilage\nragu\nqt\n1.5\n\n5\n", "--config", cfg)

	logPath := filepath.Join(dir, "data", "waste_log.jsonl")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatalf("append garbage: %v", err)
	}
	f.Close()

	out := execute(t, "", "repair", "--config", cfg)
	if !strings.Contains(out, "dropped line 2") || !strings.Contains(out, "kept 1 entries") {
		t.Errorf("unexpected repair output:\n%s", out)
	}

	out = execute(t, "", "repair", "--config", cfg)
	if !strings.Contains(out, "Log is clean: 1 entries.") {
		t.Errorf("log should be clean after repair:\n%s", out)
	}
}

func TestCommands_SubscribeRequiresBroker(t *testing.T) {
	cfg, _ := writeConfig(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"subscribe", "--config", cfg})
	if err := root.Execute(); err == nil {
		t.Error("expected error when rabbitmq is disabled")
	}
}
