package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/wire"
)

// EvaluateCmd returns the evaluate command.
func EvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score annotations without changing them",
		Long:  "Record standalone quality evaluations of submitted annotations.",
	}

	cmd.AddCommand(evaluateCreateCmd())
	cmd.AddCommand(evaluateUpdateCmd())
	cmd.AddCommand(evaluateListCmd())
	cmd.AddCommand(evaluateSummaryCmd())

	return cmd
}

func evaluateCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [annotation-id]",
		Short: "Evaluate a submitted annotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			feedback, _ := cmd.Flags().GetString("feedback")
			notes, _ := cmd.Flags().GetString("notes")

			evaluation, err := wire.EvaluationService().CreateEvaluation(ctx, primary.CreateEvaluationRequest{
				AnnotationID:           args[0],
				EvaluatorID:            actorID,
				AnnotationQualityScore: intFlag(cmd, "quality"),
				AccuracyScore:          intFlag(cmd, "accuracy"),
				CompletenessScore:      intFlag(cmd, "completeness"),
				OverallEvaluationScore: intFlag(cmd, "overall"),
				Feedback:               feedback,
				EvaluationNotes:        notes,
				TimeSpentSeconds:       intFlag(cmd, "time-spent"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Created %s on %s\n", evaluation.ID, args[0])
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Int("quality", 0, "annotation quality score (1-5)")
	cmd.Flags().Int("accuracy", 0, "accuracy score (1-5)")
	cmd.Flags().Int("completeness", 0, "completeness score (1-5)")
	cmd.Flags().Int("overall", 0, "overall evaluation score (1-5)")
	cmd.Flags().String("feedback", "", "feedback for the annotator")
	cmd.Flags().String("notes", "", "private evaluation notes")
	cmd.Flags().Int("time-spent", 0, "seconds spent evaluating")
	return cmd
}

func evaluateUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [evaluation-id]",
		Short: "Amend your evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			var status *string
			if done, _ := cmd.Flags().GetBool("done"); done {
				s := "completed"
				status = &s
			}

			evaluation, err := wire.EvaluationService().UpdateEvaluation(ctx, primary.UpdateEvaluationRequest{
				EvaluationID:           args[0],
				EvaluatorID:            actorID,
				AnnotationQualityScore: intFlag(cmd, "quality"),
				AccuracyScore:          intFlag(cmd, "accuracy"),
				CompletenessScore:      intFlag(cmd, "completeness"),
				OverallEvaluationScore: intFlag(cmd, "overall"),
				Feedback:               strFlag(cmd, "feedback"),
				EvaluationNotes:        strFlag(cmd, "notes"),
				Status:                 status,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Updated %s (%s)\n", evaluation.ID, evaluation.Status)
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Int("quality", 0, "annotation quality score (1-5)")
	cmd.Flags().Int("accuracy", 0, "accuracy score (1-5)")
	cmd.Flags().Int("completeness", 0, "completeness score (1-5)")
	cmd.Flags().Int("overall", 0, "overall evaluation score (1-5)")
	cmd.Flags().String("feedback", "", "feedback for the annotator")
	cmd.Flags().String("notes", "", "private evaluation notes")
	cmd.Flags().Bool("done", false, "mark the evaluation completed")
	return cmd
}

func evaluateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [annotation-id]",
		Short: "List evaluations of an annotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluations, err := wire.EvaluationService().ListEvaluationsForAnnotation(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(evaluations) == 0 {
				fmt.Println("No evaluations found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEVALUATOR\tOVERALL\tSTATUS\tFEEDBACK")
			for _, e := range evaluations {
				overall := "-"
				if e.OverallEvaluationScore != nil {
					overall = fmt.Sprintf("%d", *e.OverallEvaluationScore)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.EvaluatorID, overall, e.Status, e.Feedback)
			}
			return w.Flush()
		},
	}
}

func evaluateSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show your evaluation totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			summary, err := wire.EvaluationService().EvaluatorSummary(ctx, actorID)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d evaluation(s), %d completed, average overall %.1f\n",
				summary.EvaluatorID, summary.Total, summary.Completed, summary.AverageOverall)
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}
