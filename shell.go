package main

import (
	"os"
	"strings"
)

// ShellType identifies the user's interactive shell dialect.
type ShellType string

const (
	ShellFish ShellType = "fish"
	ShellZsh  ShellType = "zsh"
	ShellBash ShellType = "bash"
	ShellSh   ShellType = "sh"
)

// DetectShell classifies the interactive shell from the SHELL environment
// variable. Unrecognized or empty values fall back to plain sh, the most
// conservative POSIX form. The result is read once at startup and never
// changes for the lifetime of the session.
func DetectShell() ShellType {
	shell := os.Getenv("SHELL")
	switch {
	case strings.Contains(shell, "fish"):
		return ShellFish
	case strings.Contains(shell, "zsh"):
		return ShellZsh
	case strings.Contains(shell, "bash"):
		return ShellBash
	default:
		return ShellSh
	}
}

// Interpreter returns the binary name used to invoke this shell in
// command-string mode (shell -c "command").
func (s ShellType) Interpreter() string {
	return string(s)
}
