package main

import (
	"fmt"
	"regexp"
	"strings"
)

// The translator rewrites a fixed set of POSIX shell shapes into fish
// syntax. Anything that does not match one of these exact shapes passes
// through unchanged; fish rejects what it rejects, which is acceptable
// because translation is only guaranteed for the recognized subset.
var (
	// braceRangeLoopRe: for v in {a..b}; do body; done
	braceRangeLoopRe = regexp.MustCompile(`^for\s+(\w+)\s+in\s+\{(\d+)\.\.(\d+)\}\s*;\s*do\s+(.+?)\s*;?\s*done$`)

	// seqLoopRe: for v in $(seq a b); do body; done
	seqLoopRe = regexp.MustCompile(`^for\s+(\w+)\s+in\s+\$\(\s*seq\s+(\d+)\s+(\d+)\s*\)\s*;\s*do\s+(.+?)\s*;?\s*done$`)

	// cmdSubstRe: a $(cmd) command substitution expression.
	cmdSubstRe = regexp.MustCompile(`\$\(([^()]*)\)`)
)

// TranslateForShell rewrites command for the target shell dialect. It is
// the identity transform for every target except fish.
func TranslateForShell(command string, target ShellType) string {
	if target != ShellFish {
		return command
	}
	return ConvertToFishSyntax(command)
}

// ConvertToFishSyntax converts bash commands to fish shell syntax.
// Recognized shapes are bounded numeric for-loops (brace range or
// $(seq ...) form, up to two levels of nesting) and standalone command
// substitution. Commands with pipes, redirection, backgrounding, or bare
// semicolon sequencing are returned unchanged.
func ConvertToFishSyntax(command string) string {
	if lines, ok := convertLoop(strings.TrimSpace(command)); ok {
		return strings.Join(lines, "\n")
	}
	if strings.ContainsAny(command, "|><&;") {
		return command
	}
	if cmdSubstRe.MatchString(command) {
		return cmdSubstRe.ReplaceAllString(command, "($1)")
	}
	return command
}

// convertLoop matches one bounded numeric for-loop and emits its fish
// form: a "for v in (seq a b)" header, one body statement per line, and a
// closing "end". A body that is itself a recognized loop is converted
// recursively, which covers the two-level nested shape.
func convertLoop(command string) ([]string, bool) {
	match := braceRangeLoopRe.FindStringSubmatch(command)
	if match == nil {
		match = seqLoopRe.FindStringSubmatch(command)
	}
	if match == nil {
		return nil, false
	}

	variable, from, to := match[1], match[2], match[3]
	body := strings.TrimSuffix(strings.TrimSpace(match[4]), ";")

	lines := []string{fmt.Sprintf("for %s in (seq %s %s)", variable, from, to)}
	if inner, ok := convertLoop(strings.TrimSpace(body)); ok {
		lines = append(lines, inner...)
	} else {
		for _, stmt := range strings.Split(body, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			lines = append(lines, stmt)
		}
	}
	return append(lines, "end"), true
}
