package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/macro-dynamic/TracesCleaner/internal/database"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, sc *ScanContext) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, sc *ScanContext) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, sc)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		step := &mockStep{name: "test-step"}

		p.AddStep(step)

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "first"},
			&mockStep{name: "second"},
			&mockStep{name: "third"},
		)

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)

		p := New()
		p.AddStep(&mockStep{
			name: "step-1",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				executionOrder = append(executionOrder, "step-1")
				return nil
			},
		})
		p.AddStep(&mockStep{
			name: "step-2",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				executionOrder = append(executionOrder, "step-2")
				return nil
			},
		})

		sc := NewScanContext("test.txt", "hello", nil)
		err := p.Execute(context.Background(), sc)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 {
			t.Fatalf("expected 2 executions, got %d", len(executionOrder))
		}
		if executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		step2Called := false

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				return expectedErr
			},
		})
		p.AddStep(&mockStep{
			name: "should-not-run",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				step2Called = true
				return nil
			},
		})

		sc := NewScanContext("test.txt", "hello", nil)
		err := p.Execute(context.Background(), sc)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if step2Called {
			t.Error("second step should not have been called")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		step2Called := false

		p := New(WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				return errors.New("step failed")
			},
		})
		p.AddStep(&mockStep{
			name: "should-run",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				step2Called = true
				return nil
			},
		})

		sc := NewScanContext("test.txt", "hello", nil)
		err := p.Execute(context.Background(), sc)

		if err != nil {
			t.Errorf("expected nil error with continueOnError, got %v", err)
		}
		if !step2Called {
			t.Error("second step should have been called")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		stepCalled := false
		p := New()
		p.AddStep(&mockStep{
			name: "should-not-run",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				stepCalled = true
				return nil
			},
		})

		sc := NewScanContext("test.txt", "hello", nil)
		err := p.Execute(ctx, sc)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if stepCalled {
			t.Error("step should not have been called")
		}
	})

	t.Run("records completed steps as performed checks", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "check-1"})
		p.AddStep(&mockStep{name: "check-2"})

		sc := NewScanContext("test.txt", "hello", nil)
		err := p.Execute(context.Background(), sc)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		checks := sc.Report.PerformedChecks
		if len(checks) != 2 || checks[0] != "check-1" || checks[1] != "check-2" {
			t.Errorf("unexpected performed checks: %v", checks)
		}
	})

	t.Run("does not record failed steps", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *ScanContext) error {
				return errors.New("step failed")
			},
		})
		p.AddStep(&mockStep{name: "ok-step"})

		sc := NewScanContext("test.txt", "hello", nil)
		if err := p.Execute(context.Background(), sc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		checks := sc.Report.PerformedChecks
		if len(checks) != 1 || checks[0] != "ok-step" {
			t.Errorf("expected only the completed step recorded, got %v", checks)
		}
	})
}

// TestNewScanContext tests the scan context constructor.
func TestNewScanContext(t *testing.T) {
	t.Parallel()

	sc := NewScanContext("notes.txt", "héllo", nil)

	if sc.Source != "notes.txt" {
		t.Errorf("Source = %q, expected %q", sc.Source, "notes.txt")
	}
	if sc.Text != "héllo" {
		t.Errorf("Text = %q, expected %q", sc.Text, "héllo")
	}
	if sc.Report == nil {
		t.Fatal("expected report shell")
	}
	if sc.Report.InputRunes != 5 {
		t.Errorf("InputRunes = %d, expected 5", sc.Report.InputRunes)
	}
	if sc.Report.InputBytes != 6 {
		t.Errorf("InputBytes = %d, expected 6", sc.Report.InputBytes)
	}
}

// TestNewScanPipeline tests the default scan pipeline composition.
func TestNewScanPipeline(t *testing.T) {
	t.Parallel()

	t.Run("standard steps without history", func(t *testing.T) {
		t.Parallel()

		p := NewScanPipeline(nil)

		expected := []string{"detect", "homoglyphs", "whitespace", "summarize"}
		names := p.StepNames()
		if len(names) != len(expected) {
			t.Fatalf("expected %d steps, got %v", len(expected), names)
		}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})

	t.Run("appends persist step with history database", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Cleanup(func() {
			if err := db.Close(); err != nil {
				t.Errorf("failed to close database: %v", err)
			}
		})

		p := NewScanPipeline(db)

		names := p.StepNames()
		if len(names) != 5 || names[4] != "persist" {
			t.Errorf("expected persist as final step, got %v", names)
		}
	})
}
