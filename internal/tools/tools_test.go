package tools

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeTool writes an executable shell script and returns its path.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "faketool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testTool() Tool {
	return Tool{
		Name:        "fake",
		EnvVar:      "CONVCTL_FAKE_PATH",
		Candidates:  []string{"definitely-missing-binary-a8f2"},
		VersionArgs: []string{"--version"},
		InstallHint: "not installable",
	}
}

func TestAll(t *testing.T) {
	all := All()
	want := []string{"soffice", "pandoc", "pdftoppm", "mutool", "ffmpeg"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d tools, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, name)
		}
		if all[i].EnvVar == "" || all[i].InstallHint == "" {
			t.Errorf("All()[%d] (%s) missing env var or install hint", i, name)
		}
	}
}

func TestPath(t *testing.T) {
	t.Run("missing everywhere", func(t *testing.T) {
		tool := testTool()
		_, err := tool.Path()
		if err == nil {
			t.Fatal("Path() succeeded for a missing tool")
		}
		if !strings.Contains(err.Error(), tool.EnvVar) {
			t.Errorf("Path() error %q does not mention the override %s", err, tool.EnvVar)
		}
		if tool.Available() {
			t.Error("Available() = true for a missing tool")
		}
	})

	t.Run("env override wins", func(t *testing.T) {
		script := fakeTool(t, "echo fake 1.0")
		tool := testTool()
		t.Setenv(tool.EnvVar, script)

		got, err := tool.Path()
		if err != nil {
			t.Fatalf("Path() error: %v", err)
		}
		if got != script {
			t.Errorf("Path() = %q, want %q", got, script)
		}
		if !tool.Available() {
			t.Error("Available() = false with a valid override")
		}
	})

	t.Run("broken override does not fall back", func(t *testing.T) {
		tool := testTool()
		t.Setenv(tool.EnvVar, "/no/such/binary")

		if _, err := tool.Path(); err == nil {
			t.Error("Path() succeeded with a broken override")
		}
	})
}

func TestVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("first non-empty line", func(t *testing.T) {
		tool := testTool()
		t.Setenv(tool.EnvVar, fakeTool(t, "echo\necho fake 2.0\necho more"))
		got, err := tool.Version(ctx)
		if err != nil {
			t.Fatalf("Version() error: %v", err)
		}
		if got != "fake 2.0" {
			t.Errorf("Version() = %q, want %q", got, "fake 2.0")
		}
	})

	t.Run("tolerates non-zero exit", func(t *testing.T) {
		// pdftoppm and mutool print the version and then exit non-zero.
		tool := testTool()
		t.Setenv(tool.EnvVar, fakeTool(t, "echo fake 3.0 >&2\nexit 99"))
		got, err := tool.Version(ctx)
		if err != nil {
			t.Fatalf("Version() error: %v", err)
		}
		if got != "fake 3.0" {
			t.Errorf("Version() = %q, want %q", got, "fake 3.0")
		}
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("success is quiet", func(t *testing.T) {
		tool := testTool()
		t.Setenv(tool.EnvVar, fakeTool(t, "echo noise >&2\nexit 0"))
		if err := tool.Run(ctx, "arg"); err != nil {
			t.Errorf("Run() error: %v", err)
		}
	})

	t.Run("failure folds in output", func(t *testing.T) {
		tool := testTool()
		t.Setenv(tool.EnvVar, fakeTool(t, "echo boom >&2\nexit 3"))
		err := tool.Run(ctx, "convert", "x")
		if err == nil {
			t.Fatal("Run() succeeded, want failure")
		}
		for _, want := range []string{"boom", "fake", "failed"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("Run() error %q missing %q", err, want)
			}
		}
	})
}

func TestInspect(t *testing.T) {
	ctx := context.Background()

	t.Run("missing tool", func(t *testing.T) {
		st := testTool().Inspect(ctx)
		if st.Available {
			t.Error("Inspect().Available = true for a missing tool")
		}
		if st.Hint == "" || st.Err == "" {
			t.Errorf("Inspect() = %+v, want hint and error populated", st)
		}
	})

	t.Run("available tool", func(t *testing.T) {
		tool := testTool()
		script := fakeTool(t, "echo fake 1.0")
		t.Setenv(tool.EnvVar, script)

		st := tool.Inspect(ctx)
		if !st.Available || st.Path != script || st.Version != "fake 1.0" {
			t.Errorf("Inspect() = %+v, want available with path and version", st)
		}
	})
}
