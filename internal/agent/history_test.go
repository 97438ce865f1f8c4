package agent

import "testing"

func TestHistoryAppendOnlyOrder(t *testing.T) {
	h := NewHistory()
	h.Append(Turn{Kind: TurnProblem, Text: "cpu at 100%"})
	h.Append(Turn{Kind: TurnAssistant, Text: "checking processes"})
	h.Append(Turn{Kind: TurnToolResult, Result: &ToolResult{RequestID: "c1", Status: ToolStatusSuccess, Output: "ok"}})

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	turns := h.Turns()
	if turns[0].Kind != TurnProblem || turns[2].Kind != TurnToolResult {
		t.Error("turns out of insertion order")
	}

	// Mutating the returned slice must not affect the history.
	turns[0].Text = "tampered"
	if h.Turns()[0].Text != "cpu at 100%" {
		t.Error("Turns() exposes internal storage")
	}
}

func TestHistoryMessages(t *testing.T) {
	h := NewHistory()
	h.Append(Turn{Kind: TurnProblem, Text: "disk full"})
	h.Append(Turn{
		Kind:      TurnAssistant,
		Text:      "let me check",
		ToolCalls: []ToolCall{{ID: "c1", Name: "disk_usage", Args: map[string]any{}}},
	})
	h.Append(Turn{Kind: TurnToolResult, Result: &ToolResult{
		RequestID: "c1", ToolName: "disk_usage", Status: ToolStatusSuccess, Output: "/dev/sda1 98%",
	}})
	h.Append(Turn{Kind: TurnToolResult, Result: &ToolResult{
		RequestID: "c2", ToolName: "dmesg_errors", Status: ToolStatusFailed, ErrorDetail: "permission denied",
	}})

	msgs := h.Messages()
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Content != "disk full" {
		t.Errorf("problem message = %+v", msgs[0])
	}
	if msgs[1].Role != RoleAssistant || len(msgs[1].ToolCalls) != 1 {
		t.Errorf("assistant message lost its tool calls: %+v", msgs[1])
	}
	if msgs[2].Role != RoleTool || msgs[2].Name != "c1" || msgs[2].Content != "/dev/sda1 98%" {
		t.Errorf("success result message = %+v", msgs[2])
	}
	if msgs[3].Content != "ERROR: permission denied" {
		t.Errorf("failed result content = %q", msgs[3].Content)
	}
}

func TestHistoryClarificationWireForm(t *testing.T) {
	h := NewHistory()
	h.Append(Turn{Kind: TurnProblem, Text: "slow api"})
	h.Append(Turn{
		Kind:      TurnAssistant,
		Text:      "which env?",
		ToolCalls: []ToolCall{{ID: "ask_1", Name: AskUserToolName, Args: map[string]any{"question": "prod or staging?"}}},
	})
	h.Append(Turn{Kind: TurnClarificationRequest, Text: "prod or staging?", RequestID: "ask_1"})
	h.Append(Turn{Kind: TurnUserClarification, Text: "prod", RequestID: "ask_1"})

	msgs := h.Messages()
	// The clarification request itself emits nothing: the question rides
	// on the assistant's ask_user call, the answer pairs with its ID.
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	last := msgs[2]
	if last.Role != RoleTool || last.Name != "ask_1" || last.Content != "prod" {
		t.Errorf("clarification answer message = %+v", last)
	}
}

func TestHistoryRestore(t *testing.T) {
	orig := NewHistory()
	orig.Append(Turn{Kind: TurnProblem, Text: "oom kills"})
	orig.Append(Turn{Kind: TurnAssistant, Text: "checking memory"})

	restored := RestoreHistory(orig.Turns())
	if restored.Len() != 2 {
		t.Fatalf("restored len = %d, want 2", restored.Len())
	}
	if restored.Last().Text != "checking memory" {
		t.Errorf("last turn = %+v", restored.Last())
	}
}
