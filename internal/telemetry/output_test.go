package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sander/internal/sims/sand"
)

func TestWriterEmitsHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(FrameStats{Frame: 1, Sand: 3}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(FrameStats{Frame: 2, Sand: 3}, FrameStats{Frame: 3}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "seed,frame,sand,water,wood,moves") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if strings.Count(buf.String(), "seed,") != 1 {
		t.Fatal("header written more than once")
	}
}

func TestOutputFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	out, err := NewOutput(dir)
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}
	if out.Dir() != dir {
		t.Fatalf("unexpected dir %q", out.Dir())
	}
	if err := out.WriteConfig(sand.DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := out.WriteFrame(FrameStats{Frame: 1}); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteRun(FrameStats{Frame: 9, Seed: 4}); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"frames.csv", "runs.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
	if _, err := sand.LoadConfig(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config snapshot not loadable: %v", err)
	}
}

func TestNilOutputIsDisabled(t *testing.T) {
	out, err := NewOutput("")
	if err != nil || out != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", out, err)
	}
	if err := out.WriteFrame(FrameStats{}); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteConfig(sand.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	if out.Dir() != "" {
		t.Fatal("nil output has no dir")
	}
}

func TestOutputCloseTwice(t *testing.T) {
	out, err := NewOutput(t.TempDir())
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}
