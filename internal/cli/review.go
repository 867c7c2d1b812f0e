package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/wire"
)

// ReviewCmd returns the review command.
func ReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review submitted annotations",
		Long:  "Approve or revise completed annotations; every decision lands in an append-only ledger.",
	}

	cmd.AddCommand(reviewQueueCmd())
	cmd.AddCommand(reviewApproveCmd())
	cmd.AddCommand(reviewReviseCmd())
	cmd.AddCommand(reviewHistoryCmd())

	return cmd
}

func reviewQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "List annotations awaiting review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReviewAdapter(os.Stdout).Queue(cmd.Context())
		},
	}
}

func reviewApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [annotation-id]",
		Short: "Approve an annotation as-is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")

			rev, err := wire.RevisionService().Approve(ctx, primary.ApproveRequest{
				AnnotationID: args[0],
				EvaluatorID:  actorID,
				Notes:        notes,
			})
			if err != nil {
				return err
			}
			wire.ReviewAdapter(os.Stdout).Approved(rev)
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().String("notes", "", "optional approval notes")
	return cmd
}

func reviewReviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revise [annotation-id]",
		Short: "Revise an annotation with corrected scores or spans",
		Long: `Record a revision: your field changes overlay the annotator's work,
and the merged result is snapshotted into the ledger.

Notes and a reason are mandatory:
  lakra review revise ANN-001 --fluency 2 --notes "overrated" --reason "unnatural phrasing"

Repeat --span to replace the annotator's spans outright:
  lakra review revise ANN-001 --span "13:29:MA_SE:wrong register" \
    --notes "respanned" --reason "missed the second clause"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")
			reason, _ := cmd.Flags().GetString("reason")

			var highlights *[]primary.HighlightInput
			if values, _ := cmd.Flags().GetStringArray("span"); len(values) > 0 {
				inputs := make([]primary.HighlightInput, len(values))
				for i, value := range values {
					inputs[i], err = parseSpanFlag(value)
					if err != nil {
						return err
					}
				}
				highlights = &inputs
			}

			rev, err := wire.RevisionService().Revise(ctx, primary.ReviseRequest{
				AnnotationID:   args[0],
				EvaluatorID:    actorID,
				Notes:          notes,
				Reason:         reason,
				FluencyScore:   intFlag(cmd, "fluency"),
				AdequacyScore:  intFlag(cmd, "adequacy"),
				OverallQuality: intFlag(cmd, "overall"),
				Comments:       strFlag(cmd, "comments"),
				FinalForm:      strFlag(cmd, "final-form"),
				Highlights:     highlights,
			})
			if err != nil {
				return err
			}
			wire.ReviewAdapter(os.Stdout).Revised(rev)
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Int("fluency", 0, "corrected fluency score (1-5)")
	cmd.Flags().Int("adequacy", 0, "corrected adequacy score (1-5)")
	cmd.Flags().Int("overall", 0, "corrected overall quality score (1-5)")
	cmd.Flags().String("comments", "", "corrected comments")
	cmd.Flags().String("final-form", "", "corrected final form of the translation")
	cmd.Flags().StringArray("span", nil, `replacement span "start:end:TYPE[:comment]"; repeatable, replaces all spans`)
	cmd.Flags().String("notes", "", "revision notes (required)")
	cmd.Flags().String("reason", "", "why the annotation needed revision (required)")
	cmd.MarkFlagRequired("notes")
	cmd.MarkFlagRequired("reason")
	return cmd
}

// parseSpanFlag parses one --span value of the form
// "start:end:TYPE[:comment]". Everything past the third colon is the
// comment, colons included.
func parseSpanFlag(value string) (primary.HighlightInput, error) {
	parts := strings.SplitN(value, ":", 4)
	if len(parts) < 3 {
		return primary.HighlightInput{}, errs.Validationf("span %q must be start:end:TYPE[:comment]", value)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return primary.HighlightInput{}, errs.Validationf("span %q: start %q is not a number", value, parts[0])
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return primary.HighlightInput{}, errs.Validationf("span %q: end %q is not a number", value, parts[1])
	}
	in := primary.HighlightInput{StartIndex: start, EndIndex: end, ErrorType: parts[2]}
	if len(parts) == 4 {
		in.Comment = parts[3]
	}
	return in, nil
}

func reviewHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [annotation-id]",
		Short: "Show the revision ledger for an annotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReviewAdapter(os.Stdout).History(cmd.Context(), args[0])
		},
	}
}
