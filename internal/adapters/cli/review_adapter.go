package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
)

// ReviewAdapter translates CLI operations to RevisionService calls.
type ReviewAdapter struct {
	service primary.RevisionService
	out     io.Writer
}

// NewReviewAdapter creates a new ReviewAdapter with the given service.
func NewReviewAdapter(service primary.RevisionService, out io.Writer) *ReviewAdapter {
	return &ReviewAdapter{
		service: service,
		out:     out,
	}
}

// Queue lists completed annotations awaiting review.
func (a *ReviewAdapter) Queue(ctx context.Context) error {
	queue, err := a.service.ReviewQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to load review queue: %w", err)
	}

	if len(queue) == 0 {
		fmt.Fprintln(a.out, "Review queue is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSENTENCE\tANNOTATOR\tSPANS\tSUBMITTED")
	for _, ann := range queue {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			ann.ID, ann.SentenceID, ann.AnnotatorID, len(ann.Highlights), ann.UpdatedAt)
	}
	return w.Flush()
}

// History prints the revision ledger for one annotation in commit order.
func (a *ReviewAdapter) History(ctx context.Context, annotationID string) error {
	revisions, err := a.service.ListRevisions(ctx, annotationID)
	if err != nil {
		return err
	}

	if len(revisions) == 0 {
		fmt.Fprintf(a.out, "No revisions recorded for %s\n", annotationID)
		return nil
	}

	fmt.Fprintf(a.out, "\nRevision history for %s:\n", annotationID)
	for _, rev := range revisions {
		fmt.Fprintf(a.out, "\n%s  %s by %s at %s\n", rev.ID, rev.RevisionType, rev.EvaluatorID, rev.CreatedAt)
		if rev.Notes != "" {
			fmt.Fprintf(a.out, "  notes:  %s\n", rev.Notes)
		}
		if rev.Reason != "" {
			fmt.Fprintf(a.out, "  reason: %s\n", rev.Reason)
		}
		if rev.Snapshot != nil {
			fmt.Fprintf(a.out, "  snapshot: fluency %s / adequacy %s / overall %s, %d span(s)\n",
				fmtScore(rev.Snapshot.FluencyScore), fmtScore(rev.Snapshot.AdequacyScore),
				fmtScore(rev.Snapshot.OverallQuality), len(rev.Snapshot.Spans))
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// Approved reports the outcome of an approve decision.
func (a *ReviewAdapter) Approved(rev *primary.Revision) {
	fmt.Fprintf(a.out, "✓ Approved %s (%s)\n", rev.AnnotationID, rev.ID)
}

// Revised reports the outcome of a revise decision.
func (a *ReviewAdapter) Revised(rev *primary.Revision) {
	fmt.Fprintf(a.out, "✓ Revised %s (%s): %s\n", rev.AnnotationID, rev.ID, rev.Reason)
}
