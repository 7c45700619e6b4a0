package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/question-matcher/internal/observability"
	"github.com/jonathan/question-matcher/internal/types"
)

var (
	matchType string
)

var matchCmd = &cobra.Command{
	Use:   "match <question text>",
	Short: "Match one question against the catalog",
	Long: `Resolve a single interview question to a catalog problem.

The arguments are joined with spaces to form the question text. Use --type to hint the kind of question (coding, system_design, behavioral, technical).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchType, "type", "t", "", "Question type hint (coding, system_design, behavioral, technical)")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	hint, err := types.ParseQuestionType(matchType)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, appOptions{fallback: true, level: slog.LevelWarn})
	if err != nil {
		return err
	}
	defer a.Close()

	text := strings.Join(args, " ")
	result := a.engine.MatchQuestion(cmd.Context(), text, hint)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, result)
	}
	observability.NewPrinter(out).PrintMatchResult(result)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
