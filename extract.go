package main

import (
	"regexp"
	"strings"
)

// defaultCommandVerbs is the built-in allow-list used by the inline and
// heuristic extraction stages. A reply line or inline span only counts as
// a command candidate when its first word is one of these. The list is
// deliberately conservative so prose is not mistaken for commands; users
// can replace it via the command_verbs config setting.
var defaultCommandVerbs = []string{
	"ls", "cd", "pwd", "cat", "echo", "head", "tail", "wc",
	"uname", "whoami", "hostname", "uptime", "date", "env",
	"df", "du", "free", "ps", "top", "kill", "lscpu", "lsblk",
	"grep", "find", "which", "sed", "awk", "sort",
	"mkdir", "rm", "cp", "mv", "touch", "chmod", "chown", "ln", "tar",
	"curl", "wget", "ping", "ssh", "scp",
	"git", "docker", "make", "go", "npm", "node", "pip", "python", "python3",
	"apt", "apt-get", "brew", "dnf", "pacman",
	"systemctl", "journalctl", "sudo",
}

var (
	// fencedShellBlockRe matches fenced code regions whose opening marker
	// carries a shell language tag. "shell" must precede "sh" in the
	// alternation so the longer tag wins.
	fencedShellBlockRe = regexp.MustCompile("(?s)```(?:bash|shell|zsh|sh)[ \t]*\n(.*?)```")

	// inlineCodeRe matches short single-backtick spans on one line.
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
)

// prosePrefixes mark lines that introduce or explain a command rather
// than being one; the heuristic stage skips them outright.
var prosePrefixes = []string{"To ", "This "}

// CommandExtractor pulls executable command candidates out of free-form
// model replies. Extraction runs three stages in strict priority order
// and stops at the first stage that yields at least one candidate:
// fenced shell blocks, then inline code spans, then heuristically
// recognized command lines.
type CommandExtractor struct {
	verbs map[string]bool
}

// NewCommandExtractor creates an extractor using the given verb
// allow-list, or the built-in default when verbs is empty.
func NewCommandExtractor(verbs []string) *CommandExtractor {
	if len(verbs) == 0 {
		verbs = defaultCommandVerbs
	}
	set := make(map[string]bool, len(verbs))
	for _, v := range verbs {
		set[v] = true
	}
	return &CommandExtractor{verbs: set}
}

// Extract returns all command candidates found in reply as one
// newline-joined batch in discovery order, or "" when no stage yields
// anything. Callers treat the batch as a sequence of independent command
// lines.
func (e *CommandExtractor) Extract(reply string) string {
	if cmds := e.extractFenced(reply); len(cmds) > 0 {
		return strings.Join(cmds, "\n")
	}
	if cmds := e.extractInline(reply); len(cmds) > 0 {
		return strings.Join(cmds, "\n")
	}
	if cmds := e.extractLines(reply); len(cmds) > 0 {
		return strings.Join(cmds, "\n")
	}
	return ""
}

// extractFenced collects the non-comment, non-blank, decoration-stripped
// lines of every shell-tagged fenced block, across all blocks found. A
// block containing only comments or blanks contributes nothing, letting
// the caller fall through to the next stage.
func (e *CommandExtractor) extractFenced(reply string) []string {
	var cmds []string
	for _, match := range fencedShellBlockRe.FindAllStringSubmatch(reply, -1) {
		for _, line := range strings.Split(match[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if cmd := stripPromptDecoration(line); cmd != "" {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

// extractInline collects single-backtick spans whose first word is a
// recognized command verb.
func (e *CommandExtractor) extractInline(reply string) []string {
	var cmds []string
	for _, match := range inlineCodeRe.FindAllStringSubmatch(reply, -1) {
		span := strings.TrimSpace(match[1])
		if e.isCommand(span) {
			cmds = append(cmds, span)
		}
	}
	return cmds
}

// extractLines is the last-resort stage for terse replies without any
// code formatting: plain lines that start with a recognized verb or a
// prompt decoration.
func (e *CommandExtractor) extractLines(reply string) []string {
	var cmds []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if hasProsePrefix(line) {
			continue
		}
		if strings.HasPrefix(line, "$") || strings.HasPrefix(line, ">") {
			if cmd := stripPromptDecoration(line); cmd != "" {
				cmds = append(cmds, cmd)
			}
			continue
		}
		if e.isCommand(line) {
			cmds = append(cmds, line)
		}
	}
	return cmds
}

// isCommand reports whether the first word of s is an allow-listed verb.
func (e *CommandExtractor) isCommand(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	return e.verbs[fields[0]]
}

func hasProsePrefix(line string) bool {
	for _, prefix := range prosePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// stripPromptDecoration removes leading "$" and ">" prompt markers and
// surrounding whitespace from a candidate line.
func stripPromptDecoration(line string) string {
	line = strings.TrimSpace(line)
	for strings.HasPrefix(line, "$") || strings.HasPrefix(line, ">") {
		line = strings.TrimSpace(line[1:])
	}
	return line
}
