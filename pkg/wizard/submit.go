package wizard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
)

// ErrSubmitInFlight is returned when Submit is called while an earlier
// submission is still running. Double-clicks must not create two records.
var ErrSubmitInFlight = fmt.Errorf("wizard: a submission is already in flight")

// ErrNotReviewStep is returned when Submit is called before the applicant has
// reached the review step.
var ErrNotReviewStep = fmt.Errorf("wizard: submit is only available on the review step")

// Outcome is the result of a completed submission.
type Outcome struct {
	Record   storage.Stored
	Artifact render.Artifact
}

// Submission is the handle for an in-flight submit.
type Submission struct {
	done    chan struct{}
	outcome Outcome
	err     error
}

// Done is closed when the submission finishes, successfully or not.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until the submission finishes or the context is cancelled.
func (s *Submission) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		return s.outcome, s.err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Submit is the terminal action of the review step: it validates the whole
// document, then persists and renders it in the background, returning a
// Submission handle immediately. Only one submission may run at a time. A
// failure leaves the working document untouched, so the applicant can retry.
func (w *Wizard) Submit(ctx context.Context) (*Submission, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != validation.StepReview {
		return nil, ErrNotReviewStep
	}
	if w.submitting {
		return nil, ErrSubmitInFlight
	}
	if res := validation.ValidateAll(w.app); !res.Valid {
		return nil, &ValidationError{Step: validation.StepReview, Result: res}
	}

	snapshot := application.Clone(w.app)
	w.submitting = true

	sub := &Submission{done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		outcome, err := w.runSubmit(ctx, snapshot)

		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()

		sub.outcome, sub.err = outcome, err
		if err != nil {
			w.log.Error("submission failed", zap.Error(err))
			return
		}
		w.log.Info("application submitted",
			zap.Int("id", outcome.Record.ID),
			zap.String("artifact", outcome.Artifact.Filename))
	}()
	return sub, nil
}

func (w *Wizard) runSubmit(ctx context.Context, app application.Application) (Outcome, error) {
	var out Outcome

	if w.store != nil {
		rec, err := w.store.Create(ctx, app)
		if err != nil {
			return Outcome{}, fmt.Errorf("wizard: store application: %w", err)
		}
		rec, err = w.store.Update(ctx, rec.ID, app, application.StatusSubmitted)
		if err != nil {
			return Outcome{}, fmt.Errorf("wizard: mark submitted: %w", err)
		}
		out.Record = rec
	}

	if w.registry != nil {
		renderer, err := w.registry.Get(w.format)
		if err != nil {
			return Outcome{}, err
		}
		bytes, err := renderer.Render(ctx, app, w.opts)
		if err != nil {
			return Outcome{}, fmt.Errorf("wizard: render %s: %w", w.format, err)
		}
		out.Artifact = render.Artifact{
			Bytes:       bytes,
			Filename:    render.SuggestFilename(app, artifactExt(renderer.Name())),
			ContentType: renderer.ContentType(),
		}
	}
	return out, nil
}

func artifactExt(name string) string {
	switch name {
	case "text":
		return "txt"
	default:
		return name
	}
}
