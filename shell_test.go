package main

import "testing"

func TestDetectShell(t *testing.T) {
	tests := []struct {
		name  string
		shell string
		want  ShellType
	}{
		{"Fish", "/usr/bin/fish", ShellFish},
		{"Zsh", "/bin/zsh", ShellZsh},
		{"Bash", "/bin/bash", ShellBash},
		{"Unknown", "/bin/ksh", ShellSh},
		{"Empty", "", ShellSh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.shell)
			if got := DetectShell(); got != tt.want {
				t.Errorf("DetectShell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShellInterpreter(t *testing.T) {
	if got := ShellFish.Interpreter(); got != "fish" {
		t.Errorf("Interpreter = %q, want fish", got)
	}
	if got := ShellSh.Interpreter(); got != "sh" {
		t.Errorf("Interpreter = %q, want sh", got)
	}
}
