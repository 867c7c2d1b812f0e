// Package cli provides thin CLI adapters that translate between CLI
// concerns and application services. Adapters handle output formatting
// but delegate all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/wimarka-uic/lakra-sub002/internal/core/span"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
)

// AnnotationAdapter translates CLI operations to AnnotationService
// calls. It depends only on the service interface, enabling testing
// with mocks.
type AnnotationAdapter struct {
	service primary.AnnotationService
	out     io.Writer
}

// NewAnnotationAdapter creates a new AnnotationAdapter with the given service.
func NewAnnotationAdapter(service primary.AnnotationService, out io.Writer) *AnnotationAdapter {
	return &AnnotationAdapter{
		service: service,
		out:     out,
	}
}

// errorTypeColor maps each error code onto a terminal color: yellow
// for minor severities, red for major.
func errorTypeColor(errorType string) *color.Color {
	switch span.ErrorType(errorType) {
	case span.MinorSyntactic, span.MinorSemantic:
		return color.New(color.FgYellow)
	case span.MajorSyntactic, span.MajorSemantic:
		return color.New(color.FgRed)
	}
	return color.New(color.Reset)
}

func fmtScore(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// Show displays details for a single annotation.
func (a *AnnotationAdapter) Show(ctx context.Context, annotationID string) error {
	annotation, err := a.service.GetAnnotation(ctx, annotationID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nAnnotation: %s\n", annotation.ID)
	fmt.Fprintf(a.out, "Sentence:   %s\n", annotation.SentenceID)
	fmt.Fprintf(a.out, "Annotator:  %s\n", annotation.AnnotatorID)
	fmt.Fprintf(a.out, "Status:     %s\n", annotation.Status)
	fmt.Fprintf(a.out, "Scores:     fluency %s / adequacy %s / overall %s\n",
		fmtScore(annotation.FluencyScore), fmtScore(annotation.AdequacyScore), fmtScore(annotation.OverallQuality))
	if annotation.Comments != "" {
		fmt.Fprintf(a.out, "Comments:   %s\n", annotation.Comments)
	}
	if annotation.FinalForm != "" {
		fmt.Fprintf(a.out, "Final form: %s\n", annotation.FinalForm)
	}
	if annotation.VoiceRecordingURL != "" {
		fmt.Fprintf(a.out, "Recording:  %s\n", annotation.VoiceRecordingURL)
	}
	fmt.Fprintf(a.out, "Updated:    %s\n", annotation.UpdatedAt)

	if len(annotation.Highlights) > 0 {
		fmt.Fprintln(a.out, "\nSpans:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  RANGE\tTYPE\tTEXT\tCOMMENT")
		for _, h := range annotation.Highlights {
			fmt.Fprintf(w, "  [%d,%d)\t%s\t%q\t%s\n", h.StartIndex, h.EndIndex, h.ErrorType, h.HighlightedText, h.Comment)
		}
		w.Flush()
	}
	fmt.Fprintln(a.out)

	return nil
}

// List lists annotations with optional filters.
func (a *AnnotationAdapter) List(ctx context.Context, filters primary.AnnotationFilters) error {
	annotations, err := a.service.ListAnnotations(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list annotations: %w", err)
	}

	if len(annotations) == 0 {
		fmt.Fprintln(a.out, "No annotations found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSENTENCE\tANNOTATOR\tSTATUS\tSPANS\tSCORES")
	for _, ann := range annotations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s/%s/%s\n",
			ann.ID, ann.SentenceID, ann.AnnotatorID, ann.Status, len(ann.Highlights),
			fmtScore(ann.FluencyScore), fmtScore(ann.AdequacyScore), fmtScore(ann.OverallQuality))
	}
	return w.Flush()
}

// Render prints the machine translation with spans marked inline:
// colored by severity, followed by a per-span legend.
func (a *AnnotationAdapter) Render(ctx context.Context, annotationID string) error {
	rendered, err := a.service.RenderAnnotation(ctx, annotationID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%s (%s)\n\n", rendered.Annotation.ID, rendered.Annotation.Status)
	for _, seg := range rendered.Segments {
		if seg.Kind == span.SegmentSpan {
			c := errorTypeColor(string(seg.ErrorType))
			fmt.Fprint(a.out, c.Sprintf("[%s]", seg.Text))
		} else {
			fmt.Fprint(a.out, seg.Text)
		}
	}
	fmt.Fprintln(a.out)

	var n int
	for _, seg := range rendered.Segments {
		if seg.Kind != span.SegmentSpan {
			continue
		}
		n++
		c := errorTypeColor(string(seg.ErrorType))
		fmt.Fprintf(a.out, "  %d. %s %q", n, c.Sprint(seg.ErrorType.Label()), seg.Text)
		if seg.Comment != "" {
			fmt.Fprintf(a.out, " - %s", seg.Comment)
		}
		fmt.Fprintln(a.out)
	}
	if n == 0 {
		fmt.Fprintln(a.out, "  no spans marked")
	}
	fmt.Fprintln(a.out)

	return nil
}
