package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nao1215/pageaudit/internal/agent"
)

// printRules lists the checks of every agent in evaluation order.
func printRules(w io.Writer, agents []agent.Agent) {
	bold := color.New(color.Bold)
	for _, a := range agents {
		fmt.Fprintln(w, "----------------------------------------")
		bold.Fprintf(w, "AGENT: %s (%s)\n", a.Name(), a.ID())
		fmt.Fprintln(w, "----------------------------------------")

		checks := agent.Checks(a)
		if len(checks) == 0 {
			fmt.Fprintln(w, "  (no rule table)")
		}
		for _, c := range checks {
			fmt.Fprintf(w, "  -%-3d %-28s %s\n", c.Deduction, c.ID, c.Issue)
		}
		fmt.Fprintln(w)
	}
}
