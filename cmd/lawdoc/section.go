package main

import (
	"fmt"

	"github.com/fwojciec/lawdoc"
)

// Run executes the section command.
func (c *SectionCmd) Run(deps *Dependencies) error {
	section, err := deps.Searcher.SectionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lawdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s [%s, level %d]\n", section.ID, section.Type, section.Level)
	if section.Title != "" {
		fmt.Fprintln(deps.Stdout, section.Title)
	}
	if section.ParentID != "" {
		fmt.Fprintf(deps.Stdout, "Parent: %s\n", section.ParentID)
	}
	if len(section.Children) > 0 {
		fmt.Fprintf(deps.Stdout, "Children: %v\n", section.Children)
	}

	text := section.Content
	if c.Full {
		text = section.FullText
	}
	if text != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", text)
	}
	return nil
}
