package main

import "fmt"

// showHelp displays the fixed summary of recognized inputs.
func showHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  help             - Show this help message")
	fmt.Println("  exit             - End the chat session")
	fmt.Println("  <anything else>  - Processed by the AI")
	fmt.Println("")
	fmt.Println("When a reply contains multiple commands:")
	fmt.Println("  1..N             - Run the numbered command")
	fmt.Println("  a                - Run all commands in order")
	fmt.Println("  c                - Cancel the batch (default)")
	fmt.Println("  q                - Quit the session immediately")
}
