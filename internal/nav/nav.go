package nav

import (
	"context"
	"fmt"
	"time"

	"betfast-props-scraper/internal/browser"
	"betfast-props-scraper/internal/observability"
)

// readyStepName labels the final wait for the target view in errors.
const readyStepName = "props_view_ready"

// Step is one navigation interaction: wait for the named element, click it.
// Steps are data, so a reordered menu is a YAML edit rather than a code
// change.
type Step struct {
	Name     string           `yaml:"name"`
	Selector browser.Selector `yaml:"selector"`
}

// StepError reports exactly which step of the click sequence failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("navigation step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Navigator walks an authenticated session from the landing page to the
// target view by clicking through the configured steps in order.
type Navigator struct {
	steps        []Step
	ready        browser.Selector
	stepTimeout  time.Duration
	readyTimeout time.Duration
	logger       *observability.Logger
}

func NewNavigator(steps []Step, ready browser.Selector, stepTimeout, readyTimeout time.Duration, logger *observability.Logger) *Navigator {
	return &Navigator{
		steps:        steps,
		ready:        ready,
		stepTimeout:  stepTimeout,
		readyTimeout: readyTimeout,
		logger:       logger,
	}
}

// Navigate performs every step, then waits for the ready marker that shows
// the target view finished rendering. The first failure aborts the walk.
func (n *Navigator) Navigate(ctx context.Context, sess browser.Session) error {
	for _, step := range n.steps {
		n.logger.Info("navigation step", "step", step.Name, "selector", step.Selector.String())

		el, err := n.await(ctx, sess, step.Selector, n.stepTimeout)
		if err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
		if err := el.Click(ctx); err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
	}

	if _, err := n.await(ctx, sess, n.ready, n.readyTimeout); err != nil {
		return &StepError{Step: readyStepName, Err: fmt.Errorf("marker %s: %w", n.ready, err)}
	}

	n.logger.Info("target view reached", "steps", len(n.steps))
	return nil
}

func (n *Navigator) await(ctx context.Context, sess browser.Session, sel browser.Selector, timeout time.Duration) (browser.Element, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sess.Find(waitCtx, sel)
}
