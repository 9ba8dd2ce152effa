package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ExecutionResult holds the captured output of one command invocation.
type ExecutionResult struct {
	Stdout string
	Stderr string
}

// Combined merges stdout and stderr into the textual form fed back into
// the conversation: stdout alone when stderr is empty, with stderr
// appended as an "Error:" section otherwise. An empty string means the
// command ran but produced no output.
func (r ExecutionResult) Combined() string {
	var parts []string
	if r.Stdout != "" {
		parts = append(parts, r.Stdout)
	}
	if r.Stderr != "" {
		parts = append(parts, "Error: "+r.Stderr)
	}
	return strings.Join(parts, "\n")
}

// UserPrompter collects interactive decisions from the operator.
type UserPrompter interface {
	// Confirm asks a yes/no question, returning def for a blank answer.
	Confirm(question string, def bool) bool
	// Select asks for one of the listed choices, returning def for a
	// blank answer.
	Select(question string, choices []string, def string) string
}

// CommandRunner invokes a command in shell string mode and captures its
// standard output and standard error in full. Implementations block until
// the child process exits; no timeout applies.
type CommandRunner interface {
	Run(command string, shell ShellType) (ExecutionResult, error)
}

// systemRunner runs commands against the real operating system through
// the shell's -c command-string mode.
type systemRunner struct{}

func (systemRunner) Run(command string, shell ShellType) (ExecutionResult, error) {
	cmd := exec.Command(shell.Interpreter(), "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	result := ExecutionResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		// A non-zero exit is a normal outcome; the diagnostic is already
		// in stderr. Anything else means the process could not be run.
		if _, ok := err.(*exec.ExitError); ok {
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// terminalPrompter reads operator answers line by line from stdin.
type terminalPrompter struct {
	in *bufio.Reader
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(os.Stdin)}
}

func (p *terminalPrompter) Confirm(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s [%s]: ", question, hint)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (p *terminalPrompter) Select(question string, choices []string, def string) string {
	fmt.Printf("%s (%s) [%s]: ", question, strings.Join(choices, "/"), def)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return def
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def
	}
	return answer
}

// ConfirmPolicy controls the default answer of the confirmation gate
// depending on how a command reached it. The reference behavior differs
// by call path, so both defaults are explicit policy rather than
// hardcoded.
type ConfirmPolicy struct {
	// DirectDefault applies to a batch that was a single command from the
	// start.
	DirectDefault bool
	// SelectedDefault applies to commands chosen out of a multi-command
	// batch, including "run all".
	SelectedDefault bool
}

// ExecutionMediator presents extracted commands to the operator, collects
// the selection and confirmation decisions, runs confirmed commands
// through the appropriate shell, and captures their output. It is the
// system's only mutation point of external state.
type ExecutionMediator struct {
	shell    ShellType
	policy   ConfirmPolicy
	prompter UserPrompter
	runner   CommandRunner
	audit    *AuditLog
	logger   *SessionLogger
	exit     func(code int)
}

// NewExecutionMediator creates a mediator for the detected shell. audit
// and logger may be nil.
func NewExecutionMediator(shell ShellType, policy ConfirmPolicy, audit *AuditLog, logger *SessionLogger) *ExecutionMediator {
	return &ExecutionMediator{
		shell:    shell,
		policy:   policy,
		prompter: newTerminalPrompter(),
		runner:   systemRunner{},
		audit:    audit,
		logger:   logger,
		exit:     os.Exit,
	}
}

// splitCommands breaks a batch into its non-blank command lines.
func splitCommands(batch string) []string {
	var commands []string
	for _, line := range strings.Split(batch, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			commands = append(commands, line)
		}
	}
	return commands
}

// Execute mediates a batch of newline-separated commands. The boolean
// reports whether anything actually ran, distinguishing "ran with no
// output" from a declined, cancelled, or empty batch.
func (em *ExecutionMediator) Execute(batch string) (string, bool) {
	commands := splitCommands(batch)
	if len(commands) == 0 {
		return "", false
	}
	if len(commands) == 1 {
		return em.runConfirmed(commands[0], em.policy.DirectDefault)
	}

	fmt.Println("\nMultiple commands found:")
	for i, cmd := range commands {
		fmt.Printf("  %d. %s\n", i+1, cmd)
	}

	choices := make([]string, 0, len(commands)+3)
	for i := range commands {
		choices = append(choices, strconv.Itoa(i+1))
	}
	choices = append(choices, "a", "c", "q")

	answer := em.prompter.Select("Which command do you want to run? (a=all, c=cancel, q=quit)", choices, "c")
	switch answer {
	case "c":
		fmt.Println("Command execution cancelled")
		return "", false
	case "q":
		fmt.Println("Quitting...")
		em.exit(1)
		return "", false
	case "a":
		var outputs []string
		ran := false
		for _, cmd := range commands {
			output, ok := em.runConfirmed(cmd, em.policy.SelectedDefault)
			if !ok {
				continue
			}
			ran = true
			if output != "" {
				outputs = append(outputs, output)
			}
		}
		return strings.Join(outputs, "\n"), ran
	default:
		index, err := strconv.Atoi(answer)
		if err != nil || index < 1 || index > len(commands) {
			fmt.Printf("Invalid selection: %s\n", answer)
			return "", false
		}
		return em.runConfirmed(commands[index-1], em.policy.SelectedDefault)
	}
}

// runConfirmed executes a single command behind the confirmation gate.
// Failures launching the process are converted into a textual error
// result that is still delivered to the caller.
func (em *ExecutionMediator) runConfirmed(command string, confirmDefault bool) (string, bool) {
	fmt.Printf("\nCommand to execute: %s\n", command)
	if !em.prompter.Confirm("Do you want to execute this command?", confirmDefault) {
		fmt.Println("Command execution cancelled")
		return "", false
	}

	runCommand := command
	if em.shell == ShellFish {
		runCommand = ConvertToFishSyntax(command)
		if runCommand != command {
			fmt.Printf("Converted to fish syntax: %s\n", runCommand)
		}
	}

	result, err := em.runner.Run(runCommand, em.shell)
	if err != nil {
		message := fmt.Sprintf("Error executing command: %v", err)
		fmt.Println(message)
		em.record(command, ExecutionResult{Stderr: message})
		return message, true
	}

	if result.Stdout != "" {
		fmt.Println("Output:")
		fmt.Println(strings.TrimRight(result.Stdout, "\n"))
	}
	if result.Stderr != "" {
		fmt.Println("Error:")
		fmt.Println(strings.TrimRight(result.Stderr, "\n"))
	}

	em.record(command, result)
	return result.Combined(), true
}

// record persists the execution to the audit log and session log. Audit
// failures never affect the execution result.
func (em *ExecutionMediator) record(command string, result ExecutionResult) {
	if em.audit != nil {
		if err := em.audit.RecordExecution(command, em.shell, result); err != nil {
			em.logger.Warn("audit record failed", err)
		}
	}
	em.logger.CommandExecuted(command, result)
}
