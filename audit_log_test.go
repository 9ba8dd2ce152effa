package main

import (
	"path/filepath"
	"testing"
)

func TestAuditLog(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "executions.db")
	audit, err := NewAuditLog(dbPath)
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	defer audit.Close()

	t.Run("RecordAndCount", func(t *testing.T) {
		err := audit.RecordExecution("uname -a", ShellBash, ExecutionResult{Stdout: "Linux test 5.15.0"})
		if err != nil {
			t.Fatalf("failed to record execution: %v", err)
		}
		err = audit.RecordExecution("lscpu", ShellBash, ExecutionResult{Stderr: "boom"})
		if err != nil {
			t.Fatalf("failed to record execution: %v", err)
		}

		count, err := audit.CountExecutions()
		if err != nil {
			t.Fatalf("failed to count executions: %v", err)
		}
		if count != 2 {
			t.Errorf("count = %d, want 2", count)
		}
	})

	t.Run("RecentNewestFirst", func(t *testing.T) {
		records, err := audit.RecentExecutions(10)
		if err != nil {
			t.Fatalf("failed to list executions: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[0].Command != "lscpu" {
			t.Errorf("newest record = %q, want lscpu", records[0].Command)
		}
		if records[1].Stdout != "Linux test 5.15.0" {
			t.Errorf("older record stdout = %q, want the captured output", records[1].Stdout)
		}
	})

	t.Run("LimitApplied", func(t *testing.T) {
		records, err := audit.RecentExecutions(1)
		if err != nil {
			t.Fatalf("failed to list executions: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("got %d records, want 1", len(records))
		}
	})
}

func TestAuditLogReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "executions.db")

	audit, err := NewAuditLog(dbPath)
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	if err := audit.RecordExecution("df -h", ShellSh, ExecutionResult{Stdout: "ok"}); err != nil {
		t.Fatalf("failed to record execution: %v", err)
	}
	audit.Close()

	reopened, err := NewAuditLog(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen audit log: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.CountExecutions()
	if err != nil {
		t.Fatalf("failed to count executions: %v", err)
	}
	if count != 1 {
		t.Errorf("count after reopen = %d, want 1", count)
	}
}
