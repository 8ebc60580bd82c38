package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/OndraMix/Wiki/core/config"
	"github.com/OndraMix/Wiki/core/logger"
	"github.com/OndraMix/Wiki/core/reconcile"
	"github.com/OndraMix/Wiki/core/wiki"
	"github.com/OndraMix/Wiki/feature/chembox"
	"github.com/OndraMix/Wiki/feature/tui"
)

var (
	// Flags for the check command
	titlesFile     string
	fieldOverrides []string
	reportAbsent   bool
	useTUI         bool
)

// checkCmd runs a reconciliation check from the terminal.
var checkCmd = &cobra.Command{
	Use:   "check [titles...]",
	Short: "Check articles against the target editions",
	Long: `Check the infobox attributes of the given articles against the English
and German editions. Titles are taken from the arguments, from --file, or
from standard input (one per line, blank lines and # comments ignored).

Field settings can be adjusted per attribute:

  # Compare density with a wider tolerance, all numbers
  check --field "Hustota:all,tol=1.0" Voda Ethanol

  # Disable the solubility comparison entirely
  check --field "Rozpustnost:off" --file articles.txt

The override syntax is LABEL:OPT[,OPT...] where OPT is one of
standard|first|all, tol=N, smart, nosmart or off.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&titlesFile, "file", "f", "", "File with article titles, one per line (- for stdin)")
	checkCmd.Flags().StringArrayVar(&fieldOverrides, "field", nil, "Per-field override, LABEL:OPT[,OPT...]")
	checkCmd.Flags().BoolVar(&reportAbsent, "report-absent", false, "Report values missing from every target edition as discrepancies")
	checkCmd.Flags().BoolVar(&useTUI, "tui", false, "Render progress in an interactive terminal UI")

	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	titles, err := readTitles(args, titlesFile)
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		return fmt.Errorf("no article titles given")
	}

	spec := chembox.NewSpec()
	spec.ReportAbsent = reportAbsent
	for _, override := range fieldOverrides {
		if err := applyFieldOverride(spec, override); err != nil {
			return err
		}
	}

	client, err := wiki.NewClient(cfg.Wiki)
	if err != nil {
		return fmt.Errorf("failed to create wiki client: %w", err)
	}

	session := reconcile.NewSession(spec, client, l)

	if useTUI {
		program := tea.NewProgram(tui.NewModel(session, titles))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("terminal UI failed: %w", err)
		}
		return nil
	}

	ctx := context.Background()
	if err := session.Start(ctx, titles); err != nil {
		return err
	}

	// Ctrl+C requests a cooperative stop; the current article finishes and
	// the summary is still printed.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		session.Stop()
	}()

	return renderPlain(session)
}

// renderPlain drains the session's event queue on a fixed cadence and
// writes the report to stdout until the final summary arrives.
func renderPlain(session *reconcile.Session) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		<-ticker.C
		for _, e := range session.Events().Drain() {
			switch e.Kind {
			case reconcile.EventLog:
				fmt.Fprintln(os.Stderr, "! "+e.Message)
			case reconcile.EventResult:
				printResult(e.Result)
			case reconcile.EventDone:
				printSummary(e.Summary)
				return nil
			}
		}
	}
}

func printResult(r *reconcile.ArticleResult) {
	switch r.Class {
	case reconcile.ClassOK:
		fmt.Println("  " + r.Header)
	case reconcile.ClassMissing:
		fmt.Println("? " + r.Header)
	case reconcile.ClassError:
		fmt.Println("x " + r.Header)
		for _, m := range r.Mismatches {
			fmt.Printf("    %s (%s): %q vs %q\n", m.Field, m.Edition, m.Source, m.Target)
		}
	}
}

func printSummary(s *reconcile.Summary) {
	fmt.Printf("\nOK: %d  Errors: %d  Missing: %d\n", s.OK, s.Errors, s.Missing)
	if s.Stopped {
		fmt.Println("Run was stopped before completing.")
	}
}

// readTitles collects article titles from the arguments and the optional
// titles file, preserving order. "-" reads standard input.
func readTitles(args []string, file string) ([]string, error) {
	titles := append([]string(nil), args...)
	if file == "" {
		return titles, nil
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
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read titles: %w", err)
	}
	return titles, nil
}

// applyFieldOverride parses LABEL:OPT[,OPT...] and adjusts the field's
// configuration in place.
func applyFieldOverride(spec *reconcile.Spec, override string) error {
	label, opts, ok := strings.Cut(override, ":")
	if !ok {
		return fmt.Errorf("invalid field override %q, expected LABEL:OPT[,OPT...]", override)
	}
	cfg, found := spec.Config[label]
	if !found {
		return fmt.Errorf("unknown field %q", label)
	}

	for _, opt := range strings.Split(opts, ",") {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "off":
			cfg.Enabled = false
		case opt == "smart":
			cfg.SmartUnits = true
		case opt == "nosmart":
			cfg.SmartUnits = false
		case strings.HasPrefix(opt, "tol="):
			tol, err := strconv.ParseFloat(strings.TrimPrefix(opt, "tol="), 64)
			if err != nil || tol < 0 {
				return fmt.Errorf("field %q: invalid tolerance %q", label, opt)
			}
			cfg.Tolerance = tol
		default:
			mode, err := reconcile.ParseMode(opt)
			if err != nil {
				return fmt.Errorf("field %q: %w", label, err)
			}
			cfg.Mode = mode
		}
	}

	spec.Config[label] = cfg
	return nil
}
