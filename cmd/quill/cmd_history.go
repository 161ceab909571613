package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/willibrandon/quill/internal/storage/sqlite"
	"github.com/willibrandon/quill/internal/ui"
)

// historyWrapWidth is the column prompts and output are wrapped at
const historyWrapWidth = 76

var (
	idFormat       = color.New(color.FgHiBlack).SprintFunc()
	mutedFormat    = color.New(color.FgHiBlack).SprintFunc()
	acceptedFormat = color.New(color.FgGreen).SprintFunc()
	declinedFormat = color.New(color.FgHiYellow).SprintFunc()
	failedFormat   = color.New(color.FgHiRed).SprintFunc()
	labelFormat    = color.New(color.FgHiWhite).SprintFunc()
)

// newHistoryCmd creates the history subcommand
func newHistoryCmd() *cobra.Command {
	var (
		limit    int
		clearAll bool
		copyID   string
		showID   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent text generations",
		Long: `List recent text generations with their prompt and outcome.

  quill history              Show the 20 most recent generations
  quill history --show ID    Show one generation in full
  quill history --copy ID    Copy a generation's output to the clipboard
  quill history --clear      Delete all recorded generations

IDs may be shortened to any unique prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled (history.enabled: false)")
			}

			db, err := sqlite.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			store := sqlite.NewGenerationStore(db)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case clearAll:
				n, err := store.Clear(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d generations\n", n)
				return nil
			case copyID != "":
				return copyGeneration(ctx, store, copyID, out)
			case showID != "":
				g, err := store.Get(ctx, showID)
				if err != nil {
					return fmt.Errorf("generation %s: %w", showID, err)
				}
				printGeneration(out, g)
				return nil
			}

			gens, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			printHistory(out, gens, time.Now())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of generations to list")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded generations")
	cmd.Flags().StringVar(&copyID, "copy", "", "copy the output of a generation to the clipboard")
	cmd.Flags().StringVar(&showID, "show", "", "show a generation in full")
	cmd.MarkFlagsMutuallyExclusive("clear", "copy", "show")
	return cmd
}

// copyGeneration writes the output of a generation to the system clipboard
func copyGeneration(ctx context.Context, store *sqlite.GenerationStore, id string, out io.Writer) error {
	g, err := store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("generation %s: %w", id, err)
	}
	if g.Failed() {
		return fmt.Errorf("generation %s failed and has no output", g.ShortID())
	}

	clip := ui.NewClipboardWriter()
	if !clip.IsAvailable() {
		return fmt.Errorf("clipboard unavailable: %s", clip.Error())
	}
	if err := clip.Write(g.Output); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintf(out, "Copied %s of output from %s\n", humanize.Bytes(uint64(len(g.Output))), g.ShortID())
	return nil
}

// outcome describes whether a generation failed, was inserted or declined
func outcome(g sqlite.Generation) string {
	switch {
	case g.Failed():
		return failedFormat("failed")
	case g.Accepted:
		return acceptedFormat("accepted")
	default:
		return declinedFormat("declined")
	}
}

// printHistory prints one summary block per generation, newest first
func printHistory(w io.Writer, gens []sqlite.Generation, now time.Time) {
	if len(gens) == 0 {
		fmt.Fprintln(w, "No generations recorded yet.")
		return
	}

	for i, g := range gens {
		if i > 0 {
			fmt.Fprintln(w)
		}

		file := g.File
		if file == "" {
			file = "untitled"
		}
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			idFormat(g.ShortID()),
			humanize.RelTime(g.CreatedAt, now, "ago", "from now"),
			outcome(g),
			g.Duration.Round(time.Millisecond),
			mutedFormat(file))

		fmt.Fprintln(w, indent(wordwrap.WrapString(firstChars(g.Prompt, 240), historyWrapWidth), "  "))
		if g.Failed() {
			fmt.Fprintln(w, indent(failedFormat(firstChars(g.Error, 240)), "  "))
		}
	}
}

// printGeneration prints a generation with its full prompt and output
func printGeneration(w io.Writer, g sqlite.Generation) {
	fmt.Fprintf(w, "%s %s\n", labelFormat("ID:      "), g.ID)
	fmt.Fprintf(w, "%s %s (%s)\n", labelFormat("Created: "),
		g.CreatedAt.Local().Format(time.DateTime), humanize.Time(g.CreatedAt))
	fmt.Fprintf(w, "%s %s\n", labelFormat("Outcome: "), outcome(g))
	fmt.Fprintf(w, "%s %s\n", labelFormat("Duration:"), g.Duration.Round(time.Millisecond))
	if g.File != "" {
		fmt.Fprintf(w, "%s %s\n", labelFormat("File:    "), g.File)
	}

	fmt.Fprintf(w, "\n%s\n", labelFormat("Prompt:"))
	fmt.Fprintln(w, indent(wordwrap.WrapString(g.Prompt, historyWrapWidth), "  "))

	if g.Failed() {
		fmt.Fprintf(w, "\n%s\n", labelFormat("Error:"))
		fmt.Fprintln(w, indent(wordwrap.WrapString(g.Error, historyWrapWidth), "  "))
		return
	}
	fmt.Fprintf(w, "\n%s\n", labelFormat("Output:"))
	fmt.Fprintln(w, indent(g.Output, "  "))
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// firstChars shortens s to n runes, marking the cut with an ellipsis
func firstChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
