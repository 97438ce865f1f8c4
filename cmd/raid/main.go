package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/raidctl/raid/internal/agent"
	"github.com/raidctl/raid/internal/config"
	"github.com/raidctl/raid/internal/issues"
	"github.com/raidctl/raid/internal/prompts"
	"github.com/raidctl/raid/internal/providers"
	"github.com/raidctl/raid/internal/report"
	"github.com/raidctl/raid/internal/session"
	"github.com/raidctl/raid/internal/sysinfo"
	"github.com/raidctl/raid/internal/tools"
	"github.com/raidctl/raid/internal/tools/hostexec"
)

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("raid: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("raid", flag.ExitOnError)

	agentMode := fs.Bool("ai-agent-mode", false, "Diagnose the problem described by the remaining arguments using the AI agent")
	maxToolCalls := fs.Int("ai-max-tool-calls", 0, "Tool call budget for the session (default 50)")
	provider := fs.String("ai-provider", "", "AI provider: openai, anthropic, or local")
	apiKey := fs.String("ai-api-key", "", "API key for the AI provider")
	model := fs.String("ai-model", "", "Model name (provider default if empty)")
	baseURL := fs.String("ai-base-url", "", "Base URL override for OpenAI-compatible endpoints")
	maxTokens := fs.Int("ai-max-tokens", 0, "Maximum output tokens per completion")
	temperature := fs.Float64("ai-temperature", 0, "Sampling temperature")
	dryRun := fs.Bool("dry-run", false, "Print collected system information without contacting an AI provider")
	resumeID := fs.String("resume", "", "Resume a suspended session by ID")
	listSessions := fs.Bool("list-sessions", false, "List suspended sessions and exit")
	history := fs.Int("history", 0, "Show the N most recent recorded checks and exit")
	verbose := fs.Bool("verbose", false, "Log every agent turn and completion")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfgMgr, err := config.NewManager()
	if err != nil {
		return err
	}
	cfg, err := cfgMgr.Load()
	if err != nil {
		return err
	}
	applyFlags(cfg, *provider, *apiKey, *model, *baseURL, *maxTokens, float32(*temperature), *maxToolCalls)

	configDir := filepath.Dir(cfgMgr.GetConfigPath())

	if *dryRun {
		fmt.Println(sysinfo.Collect().Summary())
		return nil
	}

	if *history > 0 {
		return showHistory(ctx, configDir, *history)
	}

	store := session.NewStore(configDir)
	if *listSessions {
		return showSessions(store)
	}

	if *resumeID != "" {
		return resumeSession(ctx, cfg, store, configDir, *resumeID, *verbose)
	}

	if !*agentMode {
		fs.Usage()
		return fmt.Errorf("nothing to do: pass --ai-agent-mode with a problem description")
	}

	problem := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if problem == "" {
		return fmt.Errorf("describe the problem, e.g.: raid --ai-agent-mode \"nginx keeps restarting\"")
	}

	return runDiagnosis(ctx, cfg, store, configDir, problem, *verbose)
}

func applyFlags(cfg *config.Config, provider, apiKey, model, baseURL string, maxTokens int, temperature float32, maxToolCalls int) {
	if provider != "" {
		cfg.Provider = provider
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if model != "" {
		cfg.Model = model
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if maxTokens > 0 {
		cfg.MaxTokens = maxTokens
	}
	if temperature > 0 {
		cfg.Temperature = temperature
	}
	if maxToolCalls > 0 {
		cfg.MaxToolCalls = maxToolCalls
	}
}

// buildEnvironment wires the provider, tool registry, and system prompt
// shared by fresh and resumed sessions.
func buildEnvironment(cfg *config.Config, problem string, verbose bool) (agent.LLMClient, string, agent.ToolRegistry, string, agent.Hooks, error) {
	llm, modelName, err := providers.NewClient(providers.Settings{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, "", nil, "", nil, err
	}

	issueIndex, err := issues.NewIndex(issues.DefaultCatalog())
	if err != nil {
		return nil, "", nil, "", nil, err
	}

	var knownIssues string
	if problem != "" {
		if matches, err := issueIndex.Search(problem, 3); err == nil && len(matches) > 0 {
			knownIssues = issues.FormatMatches(matches)
		}
	}

	systemPrompt, err := prompts.BuildDiagnosticPrompt(sysinfo.Collect().Summary(), knownIssues)
	if err != nil {
		return nil, "", nil, "", nil, err
	}

	registry := tools.NewToolRegistry(hostexec.NewHostRunner(), issueIndex, tools.DefaultSet())

	hooks := agent.Hooks{newProgressHook(verbose)}
	return llm, modelName, registry, systemPrompt, hooks, nil
}

func agentConfig(cfg *config.Config, model string) agent.Config {
	return agent.Config{
		Model:           model,
		MaxToolCalls:    cfg.MaxToolCalls,
		MaxOutputTokens: cfg.MaxTokens,
		Temperature:     cfg.Temperature,
	}
}

func runDiagnosis(ctx context.Context, cfg *config.Config, store *session.Store, configDir, problem string, verbose bool) error {
	llm, model, registry, systemPrompt, hooks, err := buildEnvironment(cfg, problem, verbose)
	if err != nil {
		return err
	}

	sess := agent.NewSession(llm, registry, systemPrompt, agentConfig(cfg, model), hooks)

	fmt.Printf("Diagnosing: %s\n\n", problem)
	res, runErr := sess.Start(ctx, problem)
	res, runErr = operatorLoop(ctx, sess, cfg.MaxToolCalls, res, runErr)

	return finishSession(ctx, cfg, store, configDir, sess, problem, model, res, runErr, "")
}

func resumeSession(ctx context.Context, cfg *config.Config, store *session.Store, configDir, id string, verbose bool) error {
	saved, err := store.Load(id)
	if err != nil {
		return fmt.Errorf("cannot resume session %s: %w", id, err)
	}
	if saved.Provider != "" {
		cfg.Provider = saved.Provider
	}
	if saved.Model != "" {
		cfg.Model = saved.Model
	}

	llm, model, registry, systemPrompt, hooks, err := buildEnvironment(cfg, saved.Problem, verbose)
	if err != nil {
		return err
	}

	sess, err := agent.RestoreSession(llm, registry, systemPrompt, agentConfig(cfg, model), hooks, saved.Snapshot)
	if err != nil {
		return err
	}

	fmt.Printf("Resuming: %s\n\n", saved.Problem)
	res, runErr := operatorLoop(ctx, sess, cfg.MaxToolCalls, resumedResult(sess, saved.Snapshot), nil)

	return finishSession(ctx, cfg, store, configDir, sess, saved.Problem, model, res, runErr, saved.ID)
}

// resumedResult rebuilds the caller-facing view of a restored session,
// including the partial analysis gathered before it was suspended.
func resumedResult(sess *agent.Session, snap agent.Snapshot) agent.Result {
	return agent.Result{
		Status:          sess.Status(),
		Question:        snap.Question,
		PartialAnalysis: snap.LastAssistant,
		ToolCallsUsed:   snap.Budget.Used,
	}
}

// finishSession prints the outcome, records terminal sessions in the
// check history, and persists suspended ones for --resume.
func finishSession(ctx context.Context, cfg *config.Config, store *session.Store, configDir string, sess *agent.Session, problem, model string, res agent.Result, runErr error, resumedID string) error {
	switch res.Status {
	case agent.StatusPaused, agent.StatusLimitReached:
		saved := session.New(problem, cfg.Provider, model, sess.Snapshot())
		if resumedID != "" {
			saved.ID = resumedID
		}
		if err := store.Save(saved); err != nil {
			log.Printf("warning: could not persist session: %v", err)
		} else {
			fmt.Printf("\nSession suspended. Resume with: raid --resume %s\n", saved.ID)
		}
		if res.PartialAnalysis != "" {
			fmt.Printf("\nPartial analysis so far:\n%s\n", res.PartialAnalysis)
		}
		return nil
	}

	// Terminal outcome: the suspended copy, if any, is obsolete.
	if resumedID != "" {
		if err := store.Delete(resumedID); err != nil {
			log.Printf("warning: could not delete resumed session: %v", err)
		}
	}

	recordCheck(ctx, configDir, report.Check{
		Problem:       problem,
		Status:        string(res.Status),
		Model:         model,
		ToolCallsUsed: res.ToolCallsUsed,
		Extensions:    sess.Budget().ExtensionsGranted,
		Analysis:      analysisText(res),
	})

	switch res.Status {
	case agent.StatusCompleted:
		fmt.Printf("\n=== Analysis (%d tool calls) ===\n%s\n", res.ToolCallsUsed, res.FinalAnalysis)
		return nil
	case agent.StatusFailed:
		if res.PartialAnalysis != "" {
			fmt.Printf("\nPartial analysis before failure:\n%s\n", res.PartialAnalysis)
		}
		return runErr
	default:
		return runErr
	}
}

func analysisText(res agent.Result) string {
	if res.FinalAnalysis != "" {
		return res.FinalAnalysis
	}
	return res.PartialAnalysis
}

func recordCheck(ctx context.Context, configDir string, check report.Check) {
	store, err := report.NewStore(ctx, filepath.Join(configDir, "history.db"))
	if err != nil {
		log.Printf("warning: could not open check history: %v", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordCheck(ctx, check); err != nil {
		log.Printf("warning: could not record check: %v", err)
	}
}

func showHistory(ctx context.Context, configDir string, limit int) error {
	store, err := report.NewStore(ctx, filepath.Join(configDir, "history.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	checks, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(checks) == 0 {
		fmt.Println("no recorded checks")
		return nil
	}
	for _, c := range checks {
		fmt.Printf("#%d  %s  [%s]  %d tool calls\n  %s\n",
			c.ID, c.CreatedAt.Format("2006-01-02 15:04"), c.Status, c.ToolCallsUsed, c.Problem)
	}
	return nil
}

func showSessions(store *session.Store) error {
	metas, err := store.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no suspended sessions")
		return nil
	}
	for _, m := range metas {
		fmt.Printf("%s  [%s]  %s\n  %s\n",
			m.ID, m.Status, m.UpdatedAt.Format("2006-01-02 15:04"), m.Problem)
	}
	return nil
}
