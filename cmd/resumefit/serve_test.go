package main

// Notes:
// - The stdio transport registers a process-wide session, so tests that
//   reach Listen run sequentially.
// - Protocol behavior is tested in internal/mcpserver; here only wiring
//   and exit codes are checked.

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunServe - Command wiring
// ---------------------------------------------------------------------------

func TestRunServe_EOF(t *testing.T) {
	svc := &fakeService{}
	env := newTestEnv(svc, "")

	if code := runMain([]string{"resumefit", "serve"}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	if svc.created != 1 || svc.closed != 1 {
		t.Errorf("renderer created %d, closed %d; want 1 and 1", svc.created, svc.closed)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout must carry protocol traffic only, got %q", env.stdout)
	}
}

func TestRunServe_MaxPages(t *testing.T) {
	base := &fakeService{}
	if code := runMain([]string{"resumefit", "serve"}, newTestEnv(base, "").Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	limited := &fakeService{}
	if code := runMain([]string{"resumefit", "serve", "--max-pages", "3"}, newTestEnv(limited, "").Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if limited.opts != base.opts+1 {
		t.Errorf("options = %d, want %d", limited.opts, base.opts+1)
	}
}

func TestRunServe_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		svc  *fakeService
		want int
	}{
		{"positional argument", []string{"cv.md"}, &fakeService{}, ExitUsage},
		{"unknown flag", []string{"--nope"}, &fakeService{}, ExitUsage},
		{"bad max pages", []string{"--max-pages", "many"}, &fakeService{}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.svc, "")
			args := append([]string{"resumefit", "serve"}, tt.args...)
			if code := runMain(args, env.Environment); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
			if tt.svc.created != 0 {
				t.Error("renderer created despite usage error")
			}
		})
	}
}
