package agent

import (
	"context"
	"fmt"
	"time"
)

// AskUserToolName is the reserved meta tool through which the model
// requests human clarification. It is never dispatched and never
// counts against the tool-call budget; the session intercepts it and
// suspends until an answer arrives.
const AskUserToolName = "ask_user"

// Status enumerates the session states. Exactly one is active at any
// instant; Completed and Failed accept no further transitions.
type Status string

const (
	StatusRunning             Status = "running"
	StatusAwaitingToolResults Status = "awaiting_tool_results"
	StatusPaused              Status = "paused"
	StatusLimitReached        Status = "limit_reached"
	StatusCompleted           Status = "completed"
	StatusFailed              Status = "failed"
)

// terminal reports whether a status accepts no further transitions.
func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Config carries the per-session knobs.
type Config struct {
	Model           string
	MaxToolCalls    int           // initial budget ceiling (default 50)
	ToolTimeout     time.Duration // per-call execution bound
	MaxToolOutput   int           // per-result size bound, bytes
	MaxOutputTokens int
	Temperature     float32
	RetryConfig     *RetryConfig // nil = defaults
}

// Result is what a session hands back whenever it stops advancing on
// its own: a terminal state, or a suspension that needs operator input.
type Result struct {
	Status          Status
	FinalAnalysis   string // set when Completed
	PartialAnalysis string // last assistant text when LimitReached or Failed
	Question        string // set when Paused
	ToolCallsUsed   int
	Err             error // set when Failed
}

// Snapshot is the explicit serializable state of a session: history,
// budget, and status. Restoring a snapshot reconstructs the exact
// conversation and budget the session left off with.
type Snapshot struct {
	Status        Status        `json:"status"`
	Turns         []Turn        `json:"turns"`
	Budget        BudgetTracker `json:"budget"`
	NextRequestID int           `json:"next_request_id"`
	Question      string        `json:"question,omitempty"`
	QuestionID    string        `json:"question_id,omitempty"`
	LastAssistant string        `json:"last_assistant,omitempty"`
}

// Session is the state machine that drives the agent loop: it requests
// completions, interprets them as a final answer, a clarification
// request, or a batch of tool calls, dispatches tools, and repeats.
// All state is owned exclusively by the Session value; collaborators
// only return values that the session applies.
type Session struct {
	llm          LLMClient
	dispatcher   *ToolDispatcher
	history      *History
	budget       *BudgetTracker
	hooks        Hooks
	cfg          Config
	systemPrompt string

	status        Status
	turn          int
	nextRequestID int
	question      string
	questionID    string
	lastAssistant string
	failure       error
}

// NewSession creates a session over the given provider and tool registry.
func NewSession(llm LLMClient, reg ToolRegistry, systemPrompt string, cfg Config, hooks Hooks) *Session {
	return &Session{
		llm:           llm,
		dispatcher:    NewToolDispatcher(reg, cfg.ToolTimeout, cfg.MaxToolOutput),
		history:       NewHistory(),
		budget:        NewBudgetTracker(cfg.MaxToolCalls),
		hooks:         hooks,
		cfg:           cfg,
		systemPrompt:  systemPrompt,
		status:        StatusRunning,
		nextRequestID: 1,
	}
}

// RestoreSession rebuilds a session from a snapshot, e.g. after the
// process was restarted between pause and resume.
func RestoreSession(llm LLMClient, reg ToolRegistry, systemPrompt string, cfg Config, hooks Hooks, snap Snapshot) (*Session, error) {
	switch snap.Status {
	case StatusPaused, StatusLimitReached:
	default:
		return nil, &SessionStateError{Op: "restore", State: snap.Status}
	}
	budget := snap.Budget
	s := &Session{
		llm:           llm,
		dispatcher:    NewToolDispatcher(reg, cfg.ToolTimeout, cfg.MaxToolOutput),
		history:       RestoreHistory(snap.Turns),
		budget:        &budget,
		hooks:         hooks,
		cfg:           cfg,
		systemPrompt:  systemPrompt,
		status:        snap.Status,
		nextRequestID: snap.NextRequestID,
		question:      snap.Question,
		questionID:    snap.QuestionID,
		lastAssistant: snap.LastAssistant,
	}
	if s.nextRequestID < 1 {
		s.nextRequestID = 1
	}
	return s, nil
}

// Status returns the current session state.
func (s *Session) Status() Status { return s.status }

// History returns the session's conversation history.
func (s *Session) History() *History { return s.history }

// Budget returns a copy of the current budget state.
func (s *Session) Budget() BudgetTracker { return *s.budget }

// Snapshot captures the session's explicit state for persistence.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Status:        s.status,
		Turns:         s.history.Turns(),
		Budget:        *s.budget,
		NextRequestID: s.nextRequestID,
		Question:      s.question,
		QuestionID:    s.questionID,
		LastAssistant: s.lastAssistant,
	}
}

// Start records the problem statement and drives the loop until the
// session completes, fails, or suspends for operator input.
func (s *Session) Start(ctx context.Context, problem string) (Result, error) {
	if s.status != StatusRunning || s.history.Len() > 0 {
		return s.result(), &SessionStateError{Op: "start", State: s.status}
	}
	s.history.Append(Turn{Kind: TurnProblem, Text: problem})
	return s.loop(ctx)
}

// ResumeWithAnswer supplies the operator's answer to a clarification
// request and resumes the loop. Valid only while Paused.
func (s *Session) ResumeWithAnswer(ctx context.Context, answer string) (Result, error) {
	if s.status != StatusPaused {
		return s.result(), &SessionStateError{Op: "resume", State: s.status}
	}
	s.history.Append(Turn{Kind: TurnUserClarification, Text: answer, RequestID: s.questionID})
	s.question = ""
	s.questionID = ""
	s.status = StatusRunning
	return s.loop(ctx)
}

// ContinueAfterLimit grants an additive budget extension and resumes
// the loop. Valid only while LimitReached.
func (s *Session) ContinueAfterLimit(ctx context.Context, extension int) (Result, error) {
	if s.status != StatusLimitReached {
		return s.result(), &SessionStateError{Op: "continue", State: s.status}
	}
	if extension <= 0 {
		extension = s.cfg.MaxToolCalls
		if extension <= 0 {
			extension = DefaultToolCallLimit
		}
	}
	s.budget.Extend(extension)
	s.status = StatusRunning
	return s.loop(ctx)
}

// Terminate ends the session at an operator's request. History gathered
// so far stays intact and is reported as the partial analysis.
func (s *Session) Terminate(reason string) Result {
	if s.status.terminal() {
		return s.result()
	}
	s.status = StatusFailed
	s.failure = &OperatorTerminatedError{Reason: reason}
	return s.result()
}

// loop advances the state machine turn by turn. It is strictly
// sequential: the next completion is only requested after every result
// of the current turn has been recorded, because the order of turns is
// part of the context the model reasons over.
func (s *Session) loop(ctx context.Context) (Result, error) {
	for s.status == StatusRunning {
		select {
		case <-ctx.Done():
			return s.fail(fmt.Errorf("session cancelled: %w", ctx.Err()))
		default:
		}

		s.turn++
		s.hooks.OnTurnStart(ctx, s.turn)

		resp, err := s.requestCompletion(ctx)
		if err != nil {
			return s.fail(err)
		}

		calls, err := s.acceptToolCalls(resp.ToolCalls)
		if err != nil {
			return s.fail(err)
		}

		if resp.Assistant.Content != "" {
			s.lastAssistant = resp.Assistant.Content
		}

		// Clarification request: suspend without dispatching anything.
		if ask := findAskUser(calls); ask != nil {
			question := askUserQuestion(*ask)
			s.history.Append(Turn{Kind: TurnAssistant, Text: resp.Assistant.Content, ToolCalls: calls})
			// Any other calls in the batch still need exactly one result
			// each for the conversation to replay cleanly.
			for _, c := range calls {
				if c.ID == ask.ID {
					continue
				}
				r := ToolResult{
					RequestID:   c.ID,
					ToolName:    c.Name,
					Status:      ToolStatusFailed,
					ErrorDetail: "not executed: clarification requested first",
				}
				s.history.Append(Turn{Kind: TurnToolResult, Result: &r})
			}
			s.history.Append(Turn{Kind: TurnClarificationRequest, Text: question, RequestID: ask.ID})
			s.question = question
			s.questionID = ask.ID
			s.status = StatusPaused
			s.hooks.OnPause(ctx, question)
			return s.result(), nil
		}

		// Final answer: no tool calls requested.
		if len(calls) == 0 {
			s.history.Append(Turn{Kind: TurnAssistant, Text: resp.Assistant.Content})
			s.status = StatusCompleted
			s.hooks.OnDone(ctx, resp.Assistant.Content)
			return s.result(), nil
		}

		s.history.Append(Turn{Kind: TurnAssistant, Text: resp.Assistant.Content, ToolCalls: calls})
		s.status = StatusAwaitingToolResults

		// Consume budget per call, in the order the model listed them.
		allowed := 0
		for _, c := range calls {
			if !s.budget.TryConsume(1) {
				break
			}
			allowed++
			s.hooks.OnToolCall(ctx, c)
		}

		results := s.dispatcher.ExecuteBatch(ctx, calls[:allowed])
		for _, r := range results {
			r := r
			s.history.Append(Turn{Kind: TurnToolResult, Result: &r})
			s.hooks.OnToolResult(ctx, r)
		}

		if allowed < len(calls) {
			// Budget exhausted mid-batch: the remaining calls are not
			// executed, but each still gets exactly one result turn so
			// the conversation can be replayed to the provider.
			for _, c := range calls[allowed:] {
				r := ToolResult{
					RequestID:   c.ID,
					ToolName:    c.Name,
					Status:      ToolStatusFailed,
					ErrorDetail: "not executed: tool call limit reached",
				}
				s.history.Append(Turn{Kind: TurnToolResult, Result: &r})
				s.hooks.OnToolResult(ctx, r)
			}
			s.status = StatusLimitReached
			s.hooks.OnLimitReached(ctx, s.budget.Used, s.budget.Limit)
			return s.result(), nil
		}

		s.status = StatusRunning
	}

	return s.result(), nil
}

// requestCompletion calls the provider with the full history plus the
// tool catalogue, retrying transient failures.
func (s *Session) requestCompletion(ctx context.Context) (CompletionResponse, error) {
	msgs := make([]ChatMessage, 0, s.history.Len()+1)
	if s.systemPrompt != "" {
		msgs = append(msgs, ChatMessage{Role: RoleSystem, Content: s.systemPrompt})
	}
	msgs = append(msgs, s.history.Messages()...)

	schemas := s.dispatcher.Registry().Schemas()
	s.hooks.OnBeforeCompletion(ctx, msgs, schemas)

	retryCfg := s.cfg.RetryConfig
	if retryCfg == nil {
		def := DefaultRetryConfig()
		retryCfg = &def
	}

	opts := ChatOptions{
		Temperature:     s.cfg.Temperature,
		MaxOutputTokens: s.cfg.MaxOutputTokens,
	}

	resp, err := RetryCompletion(
		ctx,
		retryCfg.CompletionPolicy,
		s.llm,
		s.cfg.Model,
		msgs,
		schemas,
		opts,
		func(attempt int, delay time.Duration, retryErr error) {
			s.hooks.OnRetryAttempt(ctx, attempt, retryCfg.CompletionPolicy.MaxRetries, delay, retryErr)
		},
	)
	if err != nil {
		return CompletionResponse{}, err
	}

	s.hooks.OnAfterCompletion(ctx, resp)
	return resp, nil
}

// acceptToolCalls checks the structural validity of the requested calls
// and assigns monotonic request IDs where the provider supplied none.
// A call the provider itself could not decode is fatal; an unknown tool
// name or bad arguments are not (the dispatcher reports those back as
// failed results so the model can self-correct).
func (s *Session) acceptToolCalls(calls []ToolCall) ([]ToolCall, error) {
	out := make([]ToolCall, len(calls))
	for i, c := range calls {
		if c.Error != "" {
			return nil, &MalformedResponseError{Detail: fmt.Sprintf("tool call %d: %s", i, c.Error)}
		}
		if c.Name == "" {
			return nil, &MalformedResponseError{Detail: fmt.Sprintf("tool call %d has no name", i)}
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("call_%d", s.nextRequestID)
		}
		s.nextRequestID++
		if c.Args == nil {
			c.Args = map[string]any{}
		}
		out[i] = c
	}
	return out, nil
}

// fail transitions to Failed, preserving accumulated history.
func (s *Session) fail(err error) (Result, error) {
	s.status = StatusFailed
	s.failure = err
	return s.result(), err
}

// result assembles the caller-facing view of the current state.
func (s *Session) result() Result {
	r := Result{
		Status:        s.status,
		ToolCallsUsed: s.budget.Used,
	}
	switch s.status {
	case StatusCompleted:
		r.FinalAnalysis = s.lastAssistant
	case StatusPaused:
		r.Question = s.question
		r.PartialAnalysis = s.lastAssistant
	case StatusLimitReached:
		r.PartialAnalysis = s.lastAssistant
	case StatusFailed:
		r.PartialAnalysis = s.lastAssistant
		r.Err = s.failure
	}
	return r
}

// findAskUser returns the first clarification request in a batch, if any.
func findAskUser(calls []ToolCall) *ToolCall {
	for i := range calls {
		if calls[i].Name == AskUserToolName {
			return &calls[i]
		}
	}
	return nil
}

// askUserQuestion extracts the question text from an ask_user call.
func askUserQuestion(call ToolCall) string {
	if q, ok := call.Args["question"].(string); ok && q != "" {
		return q
	}
	return "The assistant needs more information to continue."
}
