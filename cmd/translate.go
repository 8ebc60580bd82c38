package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OndraMix/Wiki/core/config"
	"github.com/OndraMix/Wiki/core/wiki"
	"github.com/OndraMix/Wiki/feature/chembox"
)

var (
	// Flags for the translate command
	translateTo string
	keepMissing bool
)

// translateCmd resolves article titles to another edition via Wikidata.
var translateCmd = &cobra.Command{
	Use:   "translate [titles...]",
	Short: "Translate article titles to another edition",
	Long: `Resolve the given article titles to their counterparts on another
edition through Wikidata sitelinks. Titles are taken from the arguments or
from --file, and the translated titles are printed in the input order.
Blank lines in the input are preserved in the output.

Titles without a counterpart are skipped unless --keep-missing is set, in
which case they are printed as "title -> ?".`,
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVar(&translateTo, "to", "en", "Target edition code")
	translateCmd.Flags().StringVarP(&titlesFile, "file", "f", "", "File with article titles, one per line (- for stdin)")
	translateCmd.Flags().BoolVar(&keepMissing, "keep-missing", false, "Print titles without a counterpart as 'title -> ?'")

	RootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lines, err := readLines(args, titlesFile)
	if err != nil {
		return err
	}

	var titles []string
	for _, line := range lines {
		if line != "" {
			titles = append(titles, line)
		}
	}
	if len(titles) == 0 {
		return fmt.Errorf("no article titles given")
	}

	client, err := wiki.NewClient(cfg.Wiki)
	if err != nil {
		return fmt.Errorf("failed to create wiki client: %w", err)
	}

	links, err := client.SitelinksBatch(context.Background(), chembox.SourceEdition, titles)
	if err != nil {
		return fmt.Errorf("sitelink resolution failed: %w", err)
	}

	for _, line := range lines {
		if line == "" {
			fmt.Println()
			continue
		}
		translated, ok := lookupTitle(links, line, translateTo)
		switch {
		case ok:
			fmt.Println(translated)
		case keepMissing:
			fmt.Printf("%s -> ?\n", line)
		}
	}
	return nil
}

// lookupTitle finds the target-edition title for an input title, falling
// back to a case-insensitive match when the API returned the links under a
// differently-cased key.
func lookupTitle(links map[string]map[string]string, title, to string) (string, bool) {
	if entry, ok := links[title]; ok {
		translated, ok := entry[to]
		return translated, ok
	}
	for key, entry := range links {
		if strings.EqualFold(key, title) {
			translated, ok := entry[to]
			return translated, ok
		}
	}
	return "", false
}

// readLines collects raw input lines from the arguments and the optional
// file, preserving blank lines and order. "-" reads standard input.
func readLines(args []string, file string) ([]string, error) {
	lines := append([]string(nil), args...)
	if file == "" {
		return lines, nil
	}

	in := os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open titles file: %w", err)
		}
		defer f.Close()
		in = f
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read titles: %w", err)
	}
	return lines, nil
}
