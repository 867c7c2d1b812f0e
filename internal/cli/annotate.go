package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/wire"
)

// AnnotateCmd returns the annotate command.
func AnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate machine translations",
		Long:  "Start, edit, submit and inspect annotations: scores, comments and error spans.",
	}

	cmd.AddCommand(annotateStartCmd())
	cmd.AddCommand(annotateShowCmd())
	cmd.AddCommand(annotateListCmd())
	cmd.AddCommand(annotateRenderCmd())
	cmd.AddCommand(annotateUpdateCmd())
	cmd.AddCommand(annotateSpanCmd())
	cmd.AddCommand(annotateSubmitCmd())
	cmd.AddCommand(annotateReopenCmd())
	cmd.AddCommand(annotateRecordCmd())
	cmd.AddCommand(annotateDeleteCmd())

	return cmd
}

// intFlag returns the flag value when the caller set it, nil otherwise.
func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// strFlag returns the flag value when the caller set it, nil otherwise.
func strFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func addScoreFlags(cmd *cobra.Command) {
	cmd.Flags().Int("fluency", 0, "fluency score (1-5)")
	cmd.Flags().Int("adequacy", 0, "adequacy score (1-5)")
	cmd.Flags().Int("overall", 0, "overall quality score (1-5)")
	cmd.Flags().String("comments", "", "free-form comments")
	cmd.Flags().String("final-form", "", "corrected final form of the translation")
	cmd.Flags().Int("time-spent", 0, "seconds spent on this annotation")
}

func annotateStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [sentence-id]",
		Short: "Start annotating a sentence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			result, err := wire.AnnotationService().CreateAnnotation(ctx, primary.CreateAnnotationRequest{
				SentenceID:  args[0],
				AnnotatorID: actorID,
			})
			if err != nil {
				return err
			}

			switch result.Outcome {
			case primary.OutcomeCreated:
				fmt.Printf("✓ Started %s on %s\n", result.Annotation.ID, args[0])
			case primary.OutcomeAlreadyExists:
				fmt.Printf("Already working on %s as %s (%s)\n", args[0], result.Annotation.ID, result.Annotation.Status)
			}
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}

func annotateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [annotation-id]",
		Short: "Show annotation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AnnotationAdapter(os.Stdout).Show(cmd.Context(), args[0])
		},
	}
}

func annotateListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sentenceID, _ := cmd.Flags().GetString("sentence")
			annotatorID, _ := cmd.Flags().GetString("annotator")
			status, _ := cmd.Flags().GetString("status")

			return wire.AnnotationAdapter(os.Stdout).List(cmd.Context(), primary.AnnotationFilters{
				SentenceID:  sentenceID,
				AnnotatorID: annotatorID,
				Status:      status,
			})
		},
	}
	cmd.Flags().String("sentence", "", "filter by sentence ID")
	cmd.Flags().String("annotator", "", "filter by annotator ID")
	cmd.Flags().String("status", "", "filter by status")
	return cmd
}

func annotateRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [annotation-id]",
		Short: "Render the translation with error spans marked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AnnotationAdapter(os.Stdout).Render(cmd.Context(), args[0])
		},
	}
}

func annotateUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [annotation-id]",
		Short: "Update draft scores and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			updated, err := wire.AnnotationService().UpdateAnnotation(ctx, primary.UpdateAnnotationRequest{
				AnnotationID:     args[0],
				ActorID:          actorID,
				FluencyScore:     intFlag(cmd, "fluency"),
				AdequacyScore:    intFlag(cmd, "adequacy"),
				OverallQuality:   intFlag(cmd, "overall"),
				Comments:         strFlag(cmd, "comments"),
				FinalForm:        strFlag(cmd, "final-form"),
				TimeSpentSeconds: intFlag(cmd, "time-spent"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Updated %s\n", updated.ID)
			return nil
		},
	}
	addActorFlags(cmd)
	addScoreFlags(cmd)
	return cmd
}

func annotateSpanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "span",
		Short: "Manage error spans on an annotation",
	}
	cmd.AddCommand(annotateSpanAddCmd())
	cmd.AddCommand(annotateSpanRemoveCmd())
	cmd.AddCommand(annotateSpanClearCmd())
	return cmd
}

// currentInputs converts stored highlights back to request inputs, so
// a span edit can resubmit the full replacement set.
func currentInputs(annotation *primary.Annotation) []primary.HighlightInput {
	inputs := make([]primary.HighlightInput, len(annotation.Highlights))
	for i, h := range annotation.Highlights {
		inputs[i] = primary.HighlightInput{
			StartIndex: h.StartIndex,
			EndIndex:   h.EndIndex,
			ErrorType:  h.ErrorType,
			Comment:    h.Comment,
		}
	}
	return inputs
}

func annotateSpanAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [annotation-id]",
		Short: "Mark an error span on the machine translation",
		Long: `Mark a byte range of the machine translation with an error type.

Error types: MI_ST (minor syntactic), MI_SE (minor semantic),
MA_ST (major syntactic), MA_SE (major semantic).

Example:
  lakra annotate span add ANN-001 --start 13 --end 29 --type MI_SE --comment "word choice"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetInt("start")
			end, _ := cmd.Flags().GetInt("end")
			errorType, _ := cmd.Flags().GetString("type")
			comment, _ := cmd.Flags().GetString("comment")

			annotation, err := wire.AnnotationService().GetAnnotation(ctx, args[0])
			if err != nil {
				return err
			}
			inputs := append(currentInputs(annotation), primary.HighlightInput{
				StartIndex: start,
				EndIndex:   end,
				ErrorType:  errorType,
				Comment:    comment,
			})

			updated, err := wire.AnnotationService().UpdateAnnotation(ctx, primary.UpdateAnnotationRequest{
				AnnotationID: args[0],
				ActorID:      actorID,
				Highlights:   &inputs,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ %s now has %d span(s)\n", updated.ID, len(updated.Highlights))
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Int("start", 0, "span start (byte offset, inclusive)")
	cmd.Flags().Int("end", 0, "span end (byte offset, exclusive)")
	cmd.Flags().String("type", "", "error type (MI_ST, MI_SE, MA_ST, MA_SE)")
	cmd.Flags().String("comment", "", "optional span comment")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	cmd.MarkFlagRequired("type")
	return cmd
}

func annotateSpanRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [annotation-id]",
		Short: "Remove one span by its position",
		Long: `Remove a single span by its 0-based position in 'annotate show' order.

Example:
  lakra annotate span remove ANN-001 --index 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			index, _ := cmd.Flags().GetInt("index")

			updated, err := wire.AnnotationService().RemoveHighlight(ctx, primary.RemoveHighlightRequest{
				AnnotationID: args[0],
				ActorID:      actorID,
				Index:        index,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ %s now has %d span(s)\n", updated.ID, len(updated.Highlights))
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Int("index", 0, "0-based span position")
	cmd.MarkFlagRequired("index")
	return cmd
}

func annotateSpanClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [annotation-id]",
		Short: "Remove all spans from an annotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			empty := []primary.HighlightInput{}
			if _, err := wire.AnnotationService().UpdateAnnotation(ctx, primary.UpdateAnnotationRequest{
				AnnotationID: args[0],
				ActorID:      actorID,
				Highlights:   &empty,
			}); err != nil {
				return err
			}
			fmt.Printf("✓ Cleared spans on %s\n", args[0])
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}

func annotateSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [annotation-id]",
		Short: "Submit an annotation for review",
		Long: `Finalize the annotation and place it in the review queue.

All three scores are mandatory at submission:
  lakra annotate submit ANN-001 --fluency 4 --adequacy 3 --overall 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			submitted, err := wire.AnnotationService().SubmitAnnotation(ctx, primary.SubmitAnnotationRequest{
				AnnotationID:     args[0],
				ActorID:          actorID,
				FluencyScore:     intFlag(cmd, "fluency"),
				AdequacyScore:    intFlag(cmd, "adequacy"),
				OverallQuality:   intFlag(cmd, "overall"),
				Comments:         strFlag(cmd, "comments"),
				FinalForm:        strFlag(cmd, "final-form"),
				TimeSpentSeconds: intFlag(cmd, "time-spent"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Submitted %s for review\n", submitted.ID)
			return nil
		},
	}
	addActorFlags(cmd)
	addScoreFlags(cmd)
	return cmd
}

func annotateReopenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reopen [annotation-id]",
		Short: "Reopen a submitted annotation for further work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			confirmed, _ := cmd.Flags().GetBool("yes")

			reopened, err := wire.AnnotationService().ReopenAnnotation(ctx, primary.ReopenAnnotationRequest{
				AnnotationID: args[0],
				ActorID:      actorID,
				Confirmed:    confirmed,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Reopened %s (%s)\n", reopened.ID, reopened.Status)
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Bool("yes", false, "confirm the reopen")
	return cmd
}

func annotateRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [annotation-id]",
		Short: "Attach a voice recording reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			url, _ := cmd.Flags().GetString("url")

			if err := wire.AnnotationService().AttachRecording(ctx, primary.AttachRecordingRequest{
				AnnotationID:    args[0],
				ActorID:         actorID,
				URL:             url,
				DurationSeconds: intFlag(cmd, "duration"),
			}); err != nil {
				return err
			}
			fmt.Printf("✓ Attached recording to %s\n", args[0])
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().String("url", "", "recording location")
	cmd.Flags().Int("duration", 0, "recording length in seconds")
	cmd.MarkFlagRequired("url")
	return cmd
}

func annotateDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [annotation-id]",
		Short: "Delete an annotation and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, role, err := resolveActor(cmd)
			if err != nil {
				return err
			}
			confirmed, _ := cmd.Flags().GetBool("yes")

			if err := wire.AnnotationService().DeleteAnnotation(ctx, primary.DeleteAnnotationRequest{
				AnnotationID: args[0],
				ActorID:      actorID,
				ActorRole:    role,
				Confirmed:    confirmed,
			}); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	}
	addActorFlags(cmd)
	cmd.Flags().Bool("yes", false, "confirm the delete")
	return cmd
}
