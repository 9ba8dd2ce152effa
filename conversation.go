package main

import (
	"fmt"
	"strings"
)

// Conversation turn roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single entry in the session transcript.
type ConversationTurn struct {
	Role    string
	Content string
}

// ConversationHistory is the append-only log of conversation turns. It is
// owned by the conversation loop and handed to the inference client by
// reference; nothing else touches it. Only the most recent window of
// turns is serialized into outbound prompt context — older turns are
// retained in memory but never resent verbatim.
type ConversationHistory struct {
	turns  []ConversationTurn
	window int
}

// NewConversationHistory creates a history whose prompt context carries
// the last window turns. Non-positive values fall back to 5.
func NewConversationHistory(window int) *ConversationHistory {
	if window <= 0 {
		window = 5
	}
	return &ConversationHistory{window: window}
}

// SetSystemPrompt inserts the system turn at the head of the history.
// The system turn is inserted exactly once per session; later calls are
// ignored.
func (h *ConversationHistory) SetSystemPrompt(content string) {
	for _, turn := range h.turns {
		if turn.Role == RoleSystem {
			return
		}
	}
	h.turns = append([]ConversationTurn{{Role: RoleSystem, Content: content}}, h.turns...)
}

// Append adds a turn to the end of the history.
func (h *ConversationHistory) Append(role, content string) {
	h.turns = append(h.turns, ConversationTurn{Role: role, Content: content})
}

// Len returns the total number of turns retained, including those outside
// the serialization window.
func (h *ConversationHistory) Len() int {
	return len(h.turns)
}

// Turns returns a copy of all retained turns, oldest first.
func (h *ConversationHistory) Turns() []ConversationTurn {
	out := make([]ConversationTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Context serializes the most recent window of turns as "role: content"
// lines for inclusion in the next outbound prompt.
func (h *ConversationHistory) Context() string {
	start := 0
	if len(h.turns) > h.window {
		start = len(h.turns) - h.window
	}
	lines := make([]string, 0, len(h.turns)-start)
	for _, turn := range h.turns[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(lines, "\n")
}
