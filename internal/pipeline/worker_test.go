package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/doctext/doctext/docstring"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorker_ProcessText(t *testing.T) {
	w := NewWorker(docstring.NewPool(0), testLogger(), false)
	job := NewJob("doc.txt", []byte("- item one\n  continued\n- item two\n"), docstring.DefaultOptions())

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors: %v)", StatusCompleted, snap.Status, snap.Errors)
	}
	want := "- item one continued\n- item two"
	if snap.Result != want {
		t.Errorf("expected result %q, got %q", want, snap.Result)
	}
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	w := NewWorker(docstring.NewPool(0), testLogger(), false)
	job := NewJob("image.png", []byte{1, 2, 3}, docstring.DefaultOptions())

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if len(snap.Errors) == 0 {
		t.Error("expected an error to be recorded")
	}
}

func TestWorker_CanceledContext(t *testing.T) {
	w := NewWorker(docstring.NewPool(0), testLogger(), false)
	job := NewJob("doc.txt", []byte("text"), docstring.DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Process(ctx, job)

	if snap := job.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
}
