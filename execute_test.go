package main

import (
	"errors"
	"strings"
	"testing"
)

// fakePrompter answers every confirmation with confirmAnswer and every
// selection with selectAnswer, recording the calls it sees.
type fakePrompter struct {
	confirmAnswer bool
	confirmCalls  int
	confirmDefs   []bool
	selectAnswer  string
	selectCalls   int
}

func (p *fakePrompter) Confirm(question string, def bool) bool {
	p.confirmCalls++
	p.confirmDefs = append(p.confirmDefs, def)
	return p.confirmAnswer
}

func (p *fakePrompter) Select(question string, choices []string, def string) string {
	p.selectCalls++
	if p.selectAnswer == "" {
		return def
	}
	return p.selectAnswer
}

// fakeRunner records invoked commands and returns a canned result.
type fakeRunner struct {
	commands []string
	result   ExecutionResult
	err      error
}

func (r *fakeRunner) Run(command string, shell ShellType) (ExecutionResult, error) {
	r.commands = append(r.commands, command)
	return r.result, r.err
}

func newTestMediator(shell ShellType, prompter *fakePrompter, runner *fakeRunner, exited *bool) *ExecutionMediator {
	return &ExecutionMediator{
		shell:    shell,
		policy:   ConfirmPolicy{DirectDefault: false, SelectedDefault: true},
		prompter: prompter,
		runner:   runner,
		exit: func(code int) {
			if exited != nil {
				*exited = true
			}
		},
	}
}

func TestExecuteSingleCommand(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true}
		runner := &fakeRunner{result: ExecutionResult{Stdout: "Linux test 5.15.0"}}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute("uname -a")
		if !ran {
			t.Fatal("expected the command to run")
		}
		if output != "Linux test 5.15.0" {
			t.Errorf("output = %q, want %q", output, "Linux test 5.15.0")
		}
		if len(runner.commands) != 1 || runner.commands[0] != "uname -a" {
			t.Errorf("runner saw %v, want one invocation of uname -a", runner.commands)
		}
		if prompter.confirmCalls != 1 {
			t.Errorf("confirmCalls = %d, want 1", prompter.confirmCalls)
		}
		// A direct single command uses the direct confirmation default.
		if prompter.confirmDefs[0] != false {
			t.Errorf("confirm default = %v, want false", prompter.confirmDefs[0])
		}
	})

	t.Run("Declined", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: false}
		runner := &fakeRunner{result: ExecutionResult{Stdout: "unused"}}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute("uname -a")
		if ran {
			t.Error("declined command must not report as ran")
		}
		if output != "" {
			t.Errorf("output = %q, want empty", output)
		}
		if len(runner.commands) != 0 {
			t.Errorf("runner saw %v, want zero invocations", runner.commands)
		}
	})

	t.Run("StderrCombined", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true}
		runner := &fakeRunner{result: ExecutionResult{Stderr: "Command not found"}}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute("nonexistent_command")
		if !ran {
			t.Fatal("expected the command to run")
		}
		if output != "Error: Command not found" {
			t.Errorf("output = %q, want %q", output, "Error: Command not found")
		}
	})

	t.Run("LaunchFailureBecomesText", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true}
		runner := &fakeRunner{err: errors.New("exec: not started")}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute("uname -a")
		if !ran {
			t.Fatal("launch failure must still be delivered as a result")
		}
		if !strings.Contains(output, "Error executing command") {
			t.Errorf("output = %q, want a textual error", output)
		}
	})

	t.Run("NoOutputStillRan", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true}
		runner := &fakeRunner{}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute("touch /tmp/x")
		if !ran {
			t.Fatal("expected the command to run")
		}
		if output != "" {
			t.Errorf("output = %q, want empty", output)
		}
	})
}

func TestExecuteMultipleCommands(t *testing.T) {
	batch := "uname -a\nlscpu\nfree -h"

	t.Run("SelectIndex", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true, selectAnswer: "2"}
		runner := &fakeRunner{result: ExecutionResult{Stdout: "cpu info"}}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute(batch)
		if !ran {
			t.Fatal("expected the selected command to run")
		}
		if output != "cpu info" {
			t.Errorf("output = %q, want %q", output, "cpu info")
		}
		if len(runner.commands) != 1 || runner.commands[0] != "lscpu" {
			t.Errorf("runner saw %v, want one invocation of lscpu", runner.commands)
		}
		// A command selected from a batch uses the selected default.
		if prompter.confirmDefs[0] != true {
			t.Errorf("confirm default = %v, want true", prompter.confirmDefs[0])
		}
	})

	t.Run("RunAll", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true, selectAnswer: "a"}
		runner := &fakeRunner{result: ExecutionResult{Stdout: "Command output"}}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute(batch)
		if !ran {
			t.Fatal("expected the commands to run")
		}
		want := "Command output\nCommand output\nCommand output"
		if output != want {
			t.Errorf("output = %q, want %q", output, want)
		}
		if len(runner.commands) != 3 {
			t.Fatalf("runner saw %d invocations, want 3", len(runner.commands))
		}
		wantOrder := []string{"uname -a", "lscpu", "free -h"}
		for i, cmd := range wantOrder {
			if runner.commands[i] != cmd {
				t.Errorf("invocation %d = %q, want %q", i, runner.commands[i], cmd)
			}
		}
	})

	t.Run("RunAllSkipsEmptyOutput", func(t *testing.T) {
		prompter := &fakePrompter{confirmAnswer: true, selectAnswer: "a"}
		runner := &fakeRunner{}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute(batch)
		if !ran {
			t.Fatal("expected the commands to run")
		}
		if output != "" {
			t.Errorf("output = %q, want empty", output)
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		prompter := &fakePrompter{selectAnswer: "c"}
		runner := &fakeRunner{}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		output, ran := em.Execute(batch)
		if ran || output != "" {
			t.Errorf("cancel returned (%q, %v), want empty and not ran", output, ran)
		}
		if len(runner.commands) != 0 {
			t.Errorf("runner saw %v, want zero invocations", runner.commands)
		}
		if prompter.selectCalls != 1 {
			t.Errorf("selectCalls = %d, want 1", prompter.selectCalls)
		}
	})

	t.Run("CancelIsDefault", func(t *testing.T) {
		prompter := &fakePrompter{} // blank answer falls back to the default
		runner := &fakeRunner{}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		_, ran := em.Execute(batch)
		if ran {
			t.Error("blank selection must cancel")
		}
		if len(runner.commands) != 0 {
			t.Errorf("runner saw %v, want zero invocations", runner.commands)
		}
	})

	t.Run("Quit", func(t *testing.T) {
		prompter := &fakePrompter{selectAnswer: "q"}
		runner := &fakeRunner{}
		exited := false
		em := newTestMediator(ShellBash, prompter, runner, &exited)

		_, ran := em.Execute(batch)
		if !exited {
			t.Error("quit must terminate the process")
		}
		if ran {
			t.Error("quit must not report as ran")
		}
		if len(runner.commands) != 0 {
			t.Errorf("runner saw %v, want zero invocations", runner.commands)
		}
	})

	t.Run("InvalidSelection", func(t *testing.T) {
		prompter := &fakePrompter{selectAnswer: "7"}
		runner := &fakeRunner{}
		em := newTestMediator(ShellBash, prompter, runner, nil)

		_, ran := em.Execute(batch)
		if ran {
			t.Error("out-of-range selection must not run anything")
		}
		if len(runner.commands) != 0 {
			t.Errorf("runner saw %v, want zero invocations", runner.commands)
		}
	})
}

func TestExecuteEmptyBatch(t *testing.T) {
	prompter := &fakePrompter{confirmAnswer: true}
	runner := &fakeRunner{}
	em := newTestMediator(ShellBash, prompter, runner, nil)

	for _, batch := range []string{"", "\n\n", "   \n  \n"} {
		output, ran := em.Execute(batch)
		if ran || output != "" {
			t.Errorf("Execute(%q) = (%q, %v), want empty and not ran", batch, output, ran)
		}
	}
	if len(runner.commands) != 0 {
		t.Errorf("runner saw %v, want zero invocations", runner.commands)
	}
}

func TestExecuteFishTranslation(t *testing.T) {
	prompter := &fakePrompter{confirmAnswer: true}
	runner := &fakeRunner{result: ExecutionResult{Stdout: "1\n2\n3\n4\n5\n"}}
	em := newTestMediator(ShellFish, prompter, runner, nil)

	output, ran := em.Execute("for i in {1..5}; do echo $i; done")
	if !ran {
		t.Fatal("expected the command to run")
	}
	if output != "1\n2\n3\n4\n5\n" {
		t.Errorf("output = %q, want the captured stdout", output)
	}
	want := "for i in (seq 1 5)\necho $i\nend"
	if len(runner.commands) != 1 || runner.commands[0] != want {
		t.Errorf("runner saw %v, want the fish form %q", runner.commands, want)
	}
}

func TestExecutionResultCombined(t *testing.T) {
	tests := []struct {
		name   string
		result ExecutionResult
		want   string
	}{
		{"StdoutOnly", ExecutionResult{Stdout: "ok"}, "ok"},
		{"StderrOnly", ExecutionResult{Stderr: "bad"}, "Error: bad"},
		{"Both", ExecutionResult{Stdout: "ok", Stderr: "bad"}, "ok\nError: bad"},
		{"Neither", ExecutionResult{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Combined(); got != tt.want {
				t.Errorf("Combined() = %q, want %q", got, tt.want)
			}
		})
	}
}
