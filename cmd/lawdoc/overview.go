package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fwojciec/lawdoc"
)

// Run executes the overview command.
func (c *OverviewCmd) Run(deps *Dependencies) error {
	overview, err := deps.Searcher.Overview(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lawdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(overview)
	}

	if overview.Metadata.Title != "" {
		fmt.Fprintln(deps.Stdout, overview.Metadata.Title)
	}
	fmt.Fprintf(deps.Stdout, "Sections: %d (~%d words)\n", overview.TotalSections, overview.EstimatedWords)

	types := make([]string, 0, len(overview.SectionsByType))
	for t := range overview.SectionsByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(deps.Stdout, "  %-12s %d\n", t, overview.SectionsByType[t])
	}

	if len(overview.PolicyDomains) > 0 {
		fmt.Fprintf(deps.Stdout, "Policy domains: %v\n", overview.PolicyDomains)
	}
	return nil
}
