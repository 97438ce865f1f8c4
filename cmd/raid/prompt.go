package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raidctl/raid/internal/agent"
)

// quitToken ends the session from any prompt.
const quitToken = "quit"

var stdin = bufio.NewReader(os.Stdin)

// operatorLoop drives the session through its suspension points:
// answering clarification questions and granting budget extensions,
// until the session reaches a terminal state or the operator stops it.
// At any prompt, "quit" terminates the session with the analysis
// gathered so far; declining an extension without quitting leaves the
// session suspended so it can be resumed later.
func operatorLoop(ctx context.Context, sess *agent.Session, extension int, res agent.Result, err error) (agent.Result, error) {
	if extension <= 0 {
		extension = agent.DefaultToolCallLimit
	}
	for err == nil {
		switch res.Status {
		case agent.StatusPaused:
			fmt.Printf("\nThe agent needs more information:\n  %s\n", res.Question)
			answer, readErr := readLine(fmt.Sprintf("Your answer (or %q to stop): ", quitToken))
			if readErr != nil {
				return sess.Terminate("input closed"), nil
			}
			if strings.EqualFold(answer, quitToken) {
				return sess.Terminate("operator quit"), nil
			}
			res, err = sess.ResumeWithAnswer(ctx, answer)

		case agent.StatusLimitReached:
			fmt.Printf("\nTool call limit reached (%d used).\n", res.ToolCallsUsed)
			answer, readErr := readLine(fmt.Sprintf("Continue with %d more tool calls? (y/n, %q to stop): ", extension, quitToken))
			if readErr != nil {
				return sess.Terminate("input closed"), nil
			}
			switch strings.ToLower(answer) {
			case "y", "yes":
				res, err = sess.ContinueAfterLimit(ctx, extension)
			case quitToken:
				return sess.Terminate("operator quit"), nil
			default:
				// Declined without quitting: leave the session
				// suspended so --resume can pick it up later.
				return res, nil
			}

		default:
			return res, err
		}
	}
	return res, err
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
