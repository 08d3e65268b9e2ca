// Package wizard drives the seven-step rental application flow: it owns the
// working document, folds partial edits into it, gates forward navigation on
// the step validators, and hands completed applications to storage and the
// renderers on submit.
package wizard

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/fieldpath"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
)

// Navigation errors.
var (
	ErrFirstStep = fmt.Errorf("wizard: already on the first step")
	ErrLastStep  = fmt.Errorf("wizard: already on the last step")
)

// ValidationError reports that a step's validators rejected the document. It
// carries the full Result so callers can surface per-field messages.
type ValidationError struct {
	Step   int
	Result validation.Result
}

func (e *ValidationError) Error() string {
	name := validation.StepName(e.Step)
	if name == "" {
		name = "application"
	}
	return fmt.Sprintf("wizard: %s has %d validation problems", name, len(e.Result.Errors))
}

// Wizard is the stateful controller for one application in progress. It is
// safe for concurrent use; all mutation goes through its methods.
type Wizard struct {
	mu sync.Mutex

	step       int
	app        application.Application
	submitting bool

	store    storage.Store
	slot     SaveSlot
	registry *render.Registry
	format   string
	opts     render.Options
	log      *zap.Logger
	now      func() time.Time
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithStore wires the backend that receives the application on submit.
func WithStore(store storage.Store) Option {
	return func(w *Wizard) { w.store = store }
}

// WithSaveSlot wires the slot used by SaveProgress and RestoreProgress.
func WithSaveSlot(slot SaveSlot) Option {
	return func(w *Wizard) { w.slot = slot }
}

// WithRegistry wires the renderer registry used on submit.
func WithRegistry(registry *render.Registry) Option {
	return func(w *Wizard) { w.registry = registry }
}

// WithFormat selects the renderer used on submit. Defaults to "pdf".
func WithFormat(format string) Option {
	return func(w *Wizard) { w.format = format }
}

// WithLetterhead overrides the letterhead printed on submitted artifacts.
func WithLetterhead(lh render.Letterhead) Option {
	return func(w *Wizard) { w.opts.Letterhead = lh }
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Wizard) { w.log = log }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// New creates a wizard on step one with a fresh application document.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		step:   validation.StepApplicationDetails,
		format: "pdf",
		opts:   render.Options{Letterhead: render.DefaultLetterhead},
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.app = application.New(w.now())
	return w
}

// Step returns the current step number (1-based).
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// StepName returns the display name of the current step.
func (w *Wizard) StepName() string {
	return validation.StepName(w.Step())
}

// Application returns a snapshot of the working document. Mutating the
// snapshot does not affect the wizard.
func (w *Wizard) Application() application.Application {
	w.mu.Lock()
	defer w.mu.Unlock()
	return application.Clone(w.app)
}

// Validate runs the current step's validators without navigating.
func (w *Wizard) Validate() validation.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	res, err := validation.ValidateStep(w.step, w.app)
	if err != nil {
		return validation.Result{Valid: true}
	}
	return res
}

// Next advances to the following step. The move is gated on the current
// step's validators: an invalid document stays put and the returned
// *ValidationError carries the findings.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step >= validation.StepCount {
		return ErrLastStep
	}
	res, err := validation.ValidateStep(w.step, w.app)
	if err != nil {
		return err
	}
	if !res.Valid {
		w.log.Debug("step blocked by validation",
			zap.Int("step", w.step),
			zap.Int("problems", len(res.Errors)))
		return &ValidationError{Step: w.step, Result: res}
	}
	w.step++
	w.log.Debug("advanced", zap.Int("step", w.step))
	return nil
}

// Previous moves back one step. Going back never validates; applicants may
// revisit earlier pages with a half-filled current page.
func (w *Wizard) Previous() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step <= validation.StepApplicationDetails {
		return ErrFirstStep
	}
	w.step--
	return nil
}

// GoTo jumps directly to a step. Only backward jumps skip validation; jumping
// forward validates every step being skipped over.
func (w *Wizard) GoTo(step int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if step < validation.StepApplicationDetails || step > validation.StepCount {
		return fmt.Errorf("wizard: step %d out of range", step)
	}
	for s := w.step; s < step; s++ {
		res, err := validation.ValidateStep(s, w.app)
		if err != nil {
			return err
		}
		if !res.Valid {
			return &ValidationError{Step: s, Result: res}
		}
	}
	w.step = step
	return nil
}

// UpdateStep folds a partial document into the working application. The
// update uses the wire field names ("applicationDetails.monthlyRent" lives
// under {"applicationDetails": {"monthlyRent": ...}}); keys absent from the
// update are preserved. Cross-field rules run after the merge: role sub-trees
// are created or discarded when their flag flips, a "no" disclosure drops its
// stale explanation, and the same-address shortcut copies the primary's
// address onto the co-applicant.
func (w *Wizard) UpdateStep(partial map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	base, err := application.ToMap(w.app)
	if err != nil {
		return err
	}
	merged := fieldpath.Merge(base, partial)
	next, err := application.FromMap(merged)
	if err != nil {
		return err
	}
	w.applyTransitions(w.app, &next)
	w.app = next
	return nil
}

// SetField writes a single dotted-path value, a convenience wrapper over
// UpdateStep for prompt-driven frontends.
func (w *Wizard) SetField(path string, value any) error {
	partial, err := fieldpath.Set(map[string]any{}, path, value)
	if err != nil {
		return err
	}
	return w.UpdateStep(partial)
}

// Reset discards the document and returns to step one.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = validation.StepApplicationDetails
	w.app = application.New(w.now())
}

// applyTransitions enforces the rules that span fields and cannot live in the
// pure merge.
func (w *Wizard) applyTransitions(old application.Application, next *application.Application) {
	if old.HasCoApplicant && !next.HasCoApplicant {
		next.DisableRole(application.RoleCoApplicant)
	} else if !old.HasCoApplicant && next.HasCoApplicant {
		next.EnableRole(application.RoleCoApplicant)
	}
	if old.HasGuarantor && !next.HasGuarantor {
		next.DisableRole(application.RoleGuarantor)
	} else if !old.HasGuarantor && next.HasGuarantor {
		next.EnableRole(application.RoleGuarantor)
	}

	if next.HasCoApplicant && next.CoApplicantSameAddress && next.CoApplicant != nil {
		next.CoApplicant.CurrentAddress = next.PrimaryApplicant.CurrentAddress
	}

	clearUnlessYes(next.Legal.LegalAction, &next.Legal.LegalActionExplanation)
	clearUnlessYes(next.Legal.BrokenLease, &next.Legal.BrokenLeaseExplanation)
	clearUnlessYes(next.Legal.Bankruptcy, &next.Legal.BankruptcyExplanation)
	clearUnlessYes(next.Legal.Felony, &next.Legal.FelonyExplanation)

	today := w.now().Format(application.DateLayout)
	for _, sig := range next.Signatures {
		if sig != nil && sig.Bitmap != "" && sig.Date == "" {
			sig.Date = today
		}
	}
}

// clearUnlessYes keeps a disclosure explanation only while its answer is
// "yes"; stale text must not linger in the document or the artifact, even
// when the answer and the explanation arrive in the same update.
func clearUnlessYes(answer string, explanation *string) {
	if answer != "yes" {
		*explanation = ""
	}
}
