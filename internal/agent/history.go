package agent

// TurnKind tags the variants of a conversation turn.
type TurnKind string

const (
	TurnProblem              TurnKind = "problem"
	TurnAssistant            TurnKind = "assistant"
	TurnToolResult           TurnKind = "tool_result"
	TurnClarificationRequest TurnKind = "clarification_request"
	TurnUserClarification    TurnKind = "user_clarification"
)

// Turn is one atomic addition to the conversation history.
type Turn struct {
	Kind      TurnKind    `json:"kind"`
	Text      string      `json:"text,omitempty"`
	ToolCalls []ToolCall  `json:"tool_calls,omitempty"`
	Result    *ToolResult `json:"result,omitempty"`
	// RequestID pairs a clarification exchange with the ask_user call
	// that produced it, so providers can replay it as a tool result.
	RequestID string `json:"request_id,omitempty"`
}

// History is the ordered, append-only log of conversation turns.
// Turns are never reordered or removed; insertion order is the causal
// order of the session and is preserved verbatim when replayed.
type History struct {
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// RestoreHistory rebuilds a history from persisted turns.
func RestoreHistory(turns []Turn) *History {
	h := &History{turns: make([]Turn, len(turns))}
	copy(h.turns, turns)
	return h
}

// Append adds a turn at the end of the history.
func (h *History) Append(t Turn) {
	h.turns = append(h.turns, t)
}

// Len returns the number of turns recorded so far.
func (h *History) Len() int { return len(h.turns) }

// Turns returns a copy of the recorded turns in causal order.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Last returns the most recent turn, or a zero Turn if empty.
func (h *History) Last() Turn {
	if len(h.turns) == 0 {
		return Turn{}
	}
	return h.turns[len(h.turns)-1]
}

// Messages converts the history into the provider wire form.
// The mapping is fixed: problem statements and clarification answers
// become user/tool messages, assistant turns carry their tool calls,
// and tool outcomes become tool-role messages keyed by request ID so
// providers can match them to the calls that produced them.
func (h *History) Messages() []ChatMessage {
	msgs := make([]ChatMessage, 0, len(h.turns))
	for _, t := range h.turns {
		switch t.Kind {
		case TurnProblem:
			msgs = append(msgs, ChatMessage{Role: RoleUser, Content: t.Text})
		case TurnAssistant:
			msgs = append(msgs, ChatMessage{
				Role:      RoleAssistant,
				Content:   t.Text,
				ToolCalls: t.ToolCalls,
			})
		case TurnToolResult:
			if t.Result == nil {
				continue
			}
			content := t.Result.Output
			if t.Result.Status == ToolStatusFailed {
				content = "ERROR: " + t.Result.ErrorDetail
			}
			msgs = append(msgs, ChatMessage{
				Role:    RoleTool,
				Name:    t.Result.RequestID,
				Content: content,
			})
		case TurnClarificationRequest:
			// The question already rides on the preceding assistant
			// turn as an ask_user call; nothing extra goes on the wire.
		case TurnUserClarification:
			if t.RequestID != "" {
				msgs = append(msgs, ChatMessage{
					Role:    RoleTool,
					Name:    t.RequestID,
					Content: t.Text,
				})
			} else {
				msgs = append(msgs, ChatMessage{Role: RoleUser, Content: t.Text})
			}
		}
	}
	return msgs
}
