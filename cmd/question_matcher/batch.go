package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/question-matcher/internal/matching"
	"github.com/jonathan/question-matcher/internal/observability"
	"github.com/jonathan/question-matcher/internal/schemas"
	"github.com/jonathan/question-matcher/internal/server"
	"github.com/jonathan/question-matcher/internal/types"
)

var (
	batchInput  string
	batchOutput string
	batchType   string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Match a file of questions against the catalog",
	Long: `Resolve many interview questions in parallel.

The input is either a JSON file of the form {"queries": [{"text": "...", "type": "coding"}]}, validated against the batch schema,
or a text file with one question per line (blank lines and lines starting with # are skipped).
Results keep the input order.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "in", "i", "", "Path to the questions file (.json batch or one question per line)")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to write the results JSON (optional)")
	batchCmd.Flags().StringVarP(&batchType, "type", "t", "", "Type hint for questions that do not carry one")

	if err := batchCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	hint, err := types.ParseQuestionType(batchType)
	if err != nil {
		return err
	}

	queries, err := readQueries(batchInput, hint)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, appOptions{fallback: true, level: slog.LevelWarn})
	if err != nil {
		return err
	}
	defer a.Close()

	batchID := uuid.New().String()
	a.logger.Info("matching batch", "batch_id", batchID, "queries", len(queries))

	results := a.engine.MatchMany(cmd.Context(), queries)
	resp := server.BatchResponse{
		BatchID: batchID,
		Results: results,
		Summary: matching.Summarize(results),
	}

	if batchOutput != "" {
		if err := writeBatchOutput(batchOutput, resp); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, resp)
	}

	printer := observability.NewPrinter(out)
	printer.PrintBatchSummary(resp.Summary)
	printer.PrintUnmatched(results)
	if batchOutput != "" {
		_, _ = fmt.Fprintf(out, "Results written to: %s\n", batchOutput)
	}
	return nil
}

// readQueries loads a batch file. hint is applied to queries without a type.
func readQueries(path string, hint types.QuestionType) ([]types.MatchQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseBatchJSON(data, hint)
	}

	var queries []types.MatchQuery
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, types.MatchQuery{Text: line, Type: hint})
	}
	return queries, nil
}

func parseBatchJSON(data []byte, hint types.QuestionType) ([]types.MatchQuery, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("questions file is not valid JSON")
	}
	if err := schemas.Validate(schemas.MatchBatch, data); err != nil {
		return nil, fmt.Errorf("questions file failed schema validation: %w", err)
	}

	var req struct {
		Queries []types.MatchQuery `json:"queries"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}
	for i := range req.Queries {
		if req.Queries[i].Type == types.QuestionTypeNone {
			req.Queries[i].Type = hint
		}
	}
	return req.Queries, nil
}

func writeBatchOutput(path string, resp server.BatchResponse) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
