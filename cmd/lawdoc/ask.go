package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/lawdoc"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	logger := func(format string, args ...any) {
		fmt.Fprintf(deps.Stderr, format+"\n", args...)
	}

	answer, err := AskWithRetry(deps.Ctx, deps.Asker, c.Question, logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lawdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	fmt.Fprintln(deps.Stdout, answer.Answer)
	if len(answer.KeyPoints) > 0 {
		fmt.Fprintln(deps.Stdout, "\nKey points:")
		for _, point := range answer.KeyPoints {
			fmt.Fprintf(deps.Stdout, "  - %s\n", point)
		}
	}
	if answer.Implications != "" {
		fmt.Fprintf(deps.Stdout, "\nImplications: %s\n", answer.Implications)
	}
	if len(answer.Sections) > 0 {
		fmt.Fprintf(deps.Stdout, "\nCited sections: %v\n", answer.Sections)
	}
	fmt.Fprintf(deps.Stdout, "Confidence: %s\n", answer.Confidence)
	return nil
}
