package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/evaluation"
	"github.com/zatekoja/voicebyte/pkg/numerals"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Replace spoken number words with digits",
		Example: `  triagectl normalize "naa number tommidi enimidi"
  echo "ikkis saal" | triagectl normalize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinArgs(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), numerals.Normalize(text))
			return err
		},
	}
}

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var field, lang string

	cmd := &cobra.Command{
		Use:   "extract [transcript...]",
		Short: "Extract one intake field from a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := entities.Field(field)
			if !f.Valid() {
				return fmt.Errorf("invalid field %q (must be one of %v)", field, entities.Fields)
			}
			text, err := joinArgs(cmd, args)
			if err != nil {
				return err
			}
			reasoning, err := opts.reasoner()
			if err != nil {
				return err
			}

			result, err := services.NewExtractionService(reasoning).
				Extract(cmd.Context(), f, text, entities.LanguageOrDefault(lang))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", "", "field to extract: name, age, mobile, symptoms or days")
	cmd.Flags().StringVarP(&lang, "lang", "l", string(entities.LanguageEnglish), "transcript language")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

type classifyOutput struct {
	entities.TriageDecision
	Source entities.TriageSource `json:"source"`
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var emergency bool

	cmd := &cobra.Command{
		Use:   "classify [symptoms...]",
		Short: "Route symptoms to one or two departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := joinArgs(cmd, args)
			if err != nil {
				return err
			}
			reasoning, err := opts.reasoner()
			if err != nil {
				return err
			}

			decision := services.NewTriageService(reasoning).Classify(cmd.Context(), text, emergency)
			return printJSON(cmd.OutOrStdout(), classifyOutput{TriageDecision: decision, Source: decision.Source})
		},
	}

	cmd.Flags().BoolVar(&emergency, "emergency", false, "patient flagged the visit as an emergency")
	return cmd
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var casesPath string
	var minAccuracy float64

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score the extractors and classifier against a golden case file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := evaluation.LoadGoldenCases(casesPath)
			if err != nil {
				return err
			}
			if err := evaluation.ValidateGoldenCases(cases); err != nil {
				return err
			}
			reasoning, err := opts.reasoner()
			if err != nil {
				return err
			}

			runner := evaluation.NewRunner(
				services.NewExtractionService(reasoning),
				services.NewTriageService(reasoning),
			)
			summary := runner.Run(cmd.Context(), cases)
			if err := printSummary(cmd, summary); err != nil {
				return err
			}

			if summary.Accuracy < minAccuracy {
				return fmt.Errorf("accuracy %.2f below threshold %.2f", summary.Accuracy, minAccuracy)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&casesPath, "cases", "internal/evaluation/testdata/golden_cases.json", "golden case JSON file")
	cmd.Flags().Float64Var(&minAccuracy, "min-accuracy", 0, "fail when overall accuracy is below this value")
	return cmd
}

func printSummary(cmd *cobra.Command, s *evaluation.Summary) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fields := make([]string, 0, len(s.ByField))
	for f := range s.ByField {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Fprintln(w, "FIELD\tCASES\tMATCHED\tACCURACY\tMRR")
	for _, f := range fields {
		fs := s.ByField[f]
		mrr := "-"
		if f == evaluation.FieldDepartment {
			mrr = fmt.Sprintf("%.2f", fs.MRR)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%s\n", f, fs.Count, fs.Matched, fs.Accuracy, mrr)
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%.2f\t\n", s.Total, s.Matched, s.Accuracy)
	if err := w.Flush(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nfallbacks: %d  avg latency: %s\n", s.Fallbacks, s.AvgLatency)
	for _, f := range s.Failures {
		fmt.Fprintf(out, "  miss %-12s %-10s got %q\n", f.CaseID, f.Field, f.Got)
	}
	return nil
}
