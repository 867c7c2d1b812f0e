package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
	"github.com/wimarka-uic/lakra-sub002/internal/wire"
)

// SentenceCmd returns the sentence command.
func SentenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentence",
		Short: "Manage the sentence corpus",
		Long:  "Import, list and retire source sentences and their machine translations.",
	}

	cmd.AddCommand(sentenceImportCmd())
	cmd.AddCommand(sentenceListCmd())
	cmd.AddCommand(sentenceShowCmd())
	cmd.AddCommand(sentenceNextCmd())
	cmd.AddCommand(sentenceRetireCmd())

	return cmd
}

func sentenceImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Bulk-import sentences from a JSON file",
		Long: `Import sentences from a JSON array of objects with source_text,
machine_translation, source_language, target_language and optional domain.

Only admins import sentences.

Example:
  lakra sentence import corpus.json --actor USER-004 --role admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, role, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}
			var sentences []primary.SentenceImport
			if err := json.Unmarshal(data, &sentences); err != nil {
				return fmt.Errorf("failed to parse import file: %w", err)
			}

			resp, err := wire.SentenceService().ImportSentences(ctx, primary.ImportSentencesRequest{
				ActorID:   actorID,
				ActorRole: role,
				Sentences: sentences,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Imported %d sentence(s): %s … %s\n", resp.Imported,
				resp.SentenceIDs[0], resp.SentenceIDs[len(resp.SentenceIDs)-1])
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}

func sentenceListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sentences",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source-lang")
			target, _ := cmd.Flags().GetString("target-lang")
			domain, _ := cmd.Flags().GetString("domain")
			activeOnly, _ := cmd.Flags().GetBool("active")

			sentences, err := wire.SentenceService().ListSentences(cmd.Context(), primary.SentenceFilters{
				SourceLanguage: source,
				TargetLanguage: target,
				Domain:         domain,
				ActiveOnly:     activeOnly,
			})
			if err != nil {
				return fmt.Errorf("failed to list sentences: %w", err)
			}

			if len(sentences) == 0 {
				fmt.Println("No sentences found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLANG\tACTIVE\tTRANSLATION")
			for _, s := range sentences {
				fmt.Fprintf(w, "%s\t%s→%s\t%t\t%s\n", s.ID, s.SourceLanguage, s.TargetLanguage, s.IsActive, s.MachineTranslation)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("source-lang", "", "filter by source language")
	cmd.Flags().String("target-lang", "", "filter by target language")
	cmd.Flags().String("domain", "", "filter by domain")
	cmd.Flags().Bool("active", false, "only active sentences")
	return cmd
}

func sentenceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [sentence-id]",
		Short: "Show sentence details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := wire.SentenceService().GetSentence(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSentence: %s (%s→%s", s.ID, s.SourceLanguage, s.TargetLanguage)
			if s.Domain != "" {
				fmt.Printf(", %s", s.Domain)
			}
			fmt.Printf(")\n")
			fmt.Printf("Source:      %s\n", s.SourceText)
			fmt.Printf("Translation: %s\n", s.MachineTranslation)
			fmt.Printf("Active:      %t\n\n", s.IsActive)
			return nil
		},
	}
}

func sentenceNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next sentence awaiting your annotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, actorID, _, err := resolveActor(cmd)
			if err != nil {
				return err
			}

			s, err := wire.SentenceService().NextForAnnotation(ctx, actorID)
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Println("Nothing left to annotate")
				return nil
			}

			fmt.Printf("%s: %s\n", s.ID, s.MachineTranslation)
			fmt.Printf("Start with: lakra annotate start %s\n", s.ID)
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}

func sentenceRetireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retire [sentence-id]",
		Short: "Retire a sentence from the annotation queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.SentenceService().DeactivateSentence(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Retired %s\n", args[0])
			return nil
		},
	}
}
