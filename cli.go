package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
)

func main() {
	fmt.Printf("Welcome to Local Agent %s!\n", Version)
	fmt.Println()

	cm := GetConfigManager()
	if cm == nil {
		fmt.Println("Error: could not initialize configuration")
		os.Exit(1)
	}
	cfg := cm.Config()

	shell := DetectShell()

	logger, err := NewSessionLogger(cfg.LogDir)
	if err != nil {
		fmt.Println("Error initializing session log:", err)
	}
	defer logger.Close()

	var audit *AuditLog
	if cfg.AuditEnabled {
		audit, err = NewAuditLog(cfg.AuditDBPath)
		if err != nil {
			fmt.Println("Error initializing audit log:", err)
			audit = nil
		} else {
			defer audit.Close()
		}
	}

	mediator := NewExecutionMediator(shell, ConfirmPolicy{
		DirectDefault:   cfg.ConfirmDefaultDirect,
		SelectedDefault: cfg.ConfirmDefaultSelected,
	}, audit, logger)

	agent := NewLocalAgent(cfg, shell, mediator, logger)

	fmt.Println("Starting chat with Local Agent...")
	fmt.Printf("Using %s shell\n", shell)
	fmt.Printf("Model: %s\n", cfg.Model)
	fmt.Println("Type 'exit' to end the chat, 'help' for commands")

	agent.EnsureBackend()
	logger.SessionStarted(shell, cfg.Model)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "You> ",
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Println("Error initializing readline:", err)
		os.Exit(1)
	}
	defer rl.Close()

	// An interrupt outside the prompt (e.g. while a generation call or a
	// child process is blocking) ends the session with a final message.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nChat session ended by user.")
		logger.SessionEnded()
		os.Exit(0)
	}()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println("\nChat session ended by user.")
				break
			}
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				break
			}
			fmt.Println("Error reading input:", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit":
			fmt.Println("Goodbye!")
			logger.SessionEnded()
			return
		case "help":
			showHelp()
			continue
		}

		agent.ProcessInput(input)
	}

	logger.SessionEnded()
}
