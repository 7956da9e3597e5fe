package main

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gcbaptista/page-search/internal/engine"
)

const replPrompt = "\nSearch: "

// runREPL reads one query per line from in and prints ranked results to
// out until EOF or "exit".
func runREPL(in io.Reader, out io.Writer, instance *engine.IndexInstance) error {
	fmt.Fprintln(out, "\nSearch engine initialized. Enter queries (or 'exit' to quit):")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, "exit") || strings.EqualFold(query, "quit") {
			return nil
		}
		printResults(out, instance, query)
	}
}

func printResults(out io.Writer, instance *engine.IndexInstance, query string) {
	hits := instance.Query(query)
	if len(hits) == 0 {
		fmt.Fprintln(out, "No results found.")
		return
	}

	fmt.Fprintf(out, "Found %d results:\n", len(hits))
	for i, hit := range hits {
		title := hit.DocumentID
		if info, err := instance.Document(hit.DocumentID); err == nil {
			title = info.Title
		}
		fmt.Fprintf(out, "%d. %s (score %d)\n", i+1, title, hit.Score)
		for _, term := range slices.Sorted(maps.Keys(hit.TermFrequencies)) {
			fmt.Fprintf(out, "   '%s' appears %d times\n", term, hit.TermFrequencies[term])
		}
		fmt.Fprintln(out)
	}
}
