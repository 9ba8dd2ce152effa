package main

import (
	"fmt"
)

// defaultSystemPrompt is the instruction block sent as the session's
// system turn. The %s is filled with the detected shell name.
const defaultSystemPrompt = "You are a helpful AI assistant that can execute commands on the user's system.\n" +
	"When asked to show information or perform actions, you should:\n" +
	"1. Use appropriate commands to gather the requested information\n" +
	"2. Always wrap commands in ```bash or ```shell code blocks\n" +
	"3. Explain what each command does before executing it\n" +
	"4. Be helpful but maintain system security\n" +
	"5. Use %s shell syntax when appropriate\n\n" +
	"Example response format:\n" +
	"To show your home directory, I'll use the `ls` command:\n" +
	"```bash\n" +
	"ls ~/\n" +
	"```\n\n" +
	"This will list all files and directories in your home folder."

// LocalAgent wires the inference client, command extractor, and execution
// mediator into the interactive conversation loop.
type LocalAgent struct {
	client    *OllamaClient
	extractor *CommandExtractor
	mediator  *ExecutionMediator
	history   *ConversationHistory
	logger    *SessionLogger
	shell     ShellType
}

// NewLocalAgent assembles an agent from the user configuration and the
// detected shell. mediator handles all command execution; logger may be
// nil.
func NewLocalAgent(cfg UserConfig, shell ShellType, mediator *ExecutionMediator, logger *SessionLogger) *LocalAgent {
	history := NewConversationHistory(cfg.HistoryWindow)
	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = fmt.Sprintf(defaultSystemPrompt, shell)
	}
	history.SetSystemPrompt(systemPrompt)

	return &LocalAgent{
		client:    NewOllamaClient(cfg),
		extractor: NewCommandExtractor(cfg.CommandVerbs),
		mediator:  mediator,
		history:   history,
		logger:    logger,
		shell:     shell,
	}
}

// EnsureBackend checks Ollama reachability and model presence at startup,
// pulling the model when missing. The session continues even when the
// backend is unreachable; each generation call then fails individually.
func (a *LocalAgent) EnsureBackend() {
	if !a.client.IsAvailable() {
		fmt.Println("Error: Ollama is not running. Please start it using 'docker-compose up -d'")
		a.logger.BackendFailure("status", fmt.Errorf("ollama unreachable at %s", a.client.BaseURL))
		return
	}

	available, err := a.client.CheckModelAvailability()
	if err != nil {
		fmt.Printf("Error checking model status: %v\n", err)
		a.logger.BackendFailure("tags", err)
		return
	}
	if available {
		return
	}

	fmt.Printf("Model %s not found. Pulling it now...\n", a.client.ModelName)
	if err := a.client.DownloadModel(); err != nil {
		fmt.Printf("Error pulling model: %v\n", err)
		a.logger.BackendFailure("pull", err)
		return
	}
	fmt.Printf("Successfully pulled model %s\n", a.client.ModelName)
	a.reportGPUUsage()
}

func (a *LocalAgent) reportGPUUsage() {
	enabled, err := a.client.CheckGPUUsage()
	if err != nil {
		fmt.Printf("Error checking GPU status: %v\n", err)
		return
	}
	if enabled {
		fmt.Println("GPU acceleration is enabled")
	} else {
		fmt.Println("GPU acceleration is not enabled. Make sure NVIDIA drivers and nvidia-container-toolkit are installed.")
	}
}

// ProcessInput runs one user exchange: generation, extraction, mediated
// execution, and any follow-up prompts produced by command output. Each
// reply that yields executed output enqueues a feedback prompt; the queue
// is drained iteratively, so arbitrarily long command chains never grow
// the call stack. The chain ends when a reply yields no runnable command
// or produces no output.
func (a *LocalAgent) ProcessInput(input string) {
	queue := []string{input}
	for len(queue) > 0 {
		prompt := queue[0]
		queue = queue[1:]

		reply, err := a.client.Generate(prompt, a.history)
		if err != nil {
			fmt.Printf("Error getting response from Ollama: %v\n", err)
			a.logger.BackendFailure("generate", err)
			return
		}
		a.logger.Turn(RoleUser, prompt)

		a.history.Append(RoleAssistant, reply)
		a.logger.Turn(RoleAssistant, reply)
		fmt.Printf("\nAssistant: %s\n", reply)

		batch := a.extractor.Extract(reply)
		if batch == "" {
			continue
		}
		a.logger.CommandsExtracted(len(splitCommands(batch)))

		output, ran := a.mediator.Execute(batch)
		if !ran || output == "" {
			continue
		}
		queue = append(queue, feedbackPrompt(batch, output))
	}
}

// feedbackPrompt builds the follow-up message embedding a command and its
// captured output for the model to analyze.
func feedbackPrompt(command, output string) string {
	return fmt.Sprintf(
		"I executed the command '%s' and got this output:\n%s\n"+
			"Please analyze this output and let me know if you need any clarification or if there's anything important I should know.",
		command, output,
	)
}
