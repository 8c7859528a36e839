package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/lawdoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var results []lawdoc.SearchResult
	var err error
	if c.Topic {
		results, err = deps.Searcher.SearchByTopic(deps.Ctx, c.Query, c.Limit)
	} else {
		results, err = deps.Searcher.Search(deps.Ctx, c.Query, c.Limit)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lawdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching sections.")
		return nil
	}
	for _, result := range results {
		title := result.Section.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%-4d %s  %s\n", result.Score, result.Section.ID, title)
	}
	return nil
}
