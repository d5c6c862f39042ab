package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"betfast-props-scraper/internal/browser"
	"betfast-props-scraper/internal/observability"
)

// ErrLoginFailed means the portal rejected the login or never showed the
// expected pages. Credentials being wrong and the site being down look the
// same from here; either way the run is over.
var ErrLoginFailed = errors.New("betfastaction login failed")

// LaunchFunc starts a fresh browser session. Injected so tests can swap in
// a scripted session without a real Chrome.
type LaunchFunc func() (browser.Session, error)

// LoginSelectors name the elements of the portal's login form. Landing is
// an element that only exists once the login has been accepted.
type LoginSelectors struct {
	UsernameField browser.Selector `yaml:"username_field"`
	PasswordField browser.Selector `yaml:"password_field"`
	SubmitButton  browser.Selector `yaml:"submit_button"`
	Landing       browser.Selector `yaml:"landing"`
}

// Opener produces authenticated browser sessions.
type Opener struct {
	launch      LaunchFunc
	baseURL     string
	selectors   LoginSelectors
	waitTimeout time.Duration
	logger      *observability.Logger
}

func NewOpener(launch LaunchFunc, baseURL string, selectors LoginSelectors, waitTimeout time.Duration, logger *observability.Logger) *Opener {
	return &Opener{
		launch:      launch,
		baseURL:     baseURL,
		selectors:   selectors,
		waitTimeout: waitTimeout,
		logger:      logger,
	}
}

// Open launches a browser and logs into the portal. On success the caller
// owns closing the returned session; on any failure after launch the
// session is closed here before returning.
func (o *Opener) Open(ctx context.Context, creds Credentials) (browser.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	sess, err := o.launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	if err := o.login(ctx, sess, creds); err != nil {
		if closeErr := sess.Close(); closeErr != nil {
			o.logger.Error("failed to close browser after login error", "error", closeErr.Error())
		}
		return nil, err
	}

	return sess, nil
}

func (o *Opener) login(ctx context.Context, sess browser.Session, creds Credentials) error {
	o.logger.Info("logging in", "url", o.baseURL)

	if err := sess.Navigate(ctx, o.baseURL); err != nil {
		return fmt.Errorf("%w: open portal: %v", ErrLoginFailed, err)
	}

	username, err := o.await(ctx, sess, o.selectors.UsernameField)
	if err != nil {
		return fmt.Errorf("%w: username field: %v", ErrLoginFailed, err)
	}
	if err := username.Type(ctx, creds.Username); err != nil {
		return fmt.Errorf("%w: enter username: %v", ErrLoginFailed, err)
	}

	password, err := o.await(ctx, sess, o.selectors.PasswordField)
	if err != nil {
		return fmt.Errorf("%w: password field: %v", ErrLoginFailed, err)
	}
	if err := password.Type(ctx, creds.Password); err != nil {
		return fmt.Errorf("%w: enter password: %v", ErrLoginFailed, err)
	}

	submit, err := o.await(ctx, sess, o.selectors.SubmitButton)
	if err != nil {
		return fmt.Errorf("%w: submit button: %v", ErrLoginFailed, err)
	}
	if err := submit.Click(ctx); err != nil {
		return fmt.Errorf("%w: submit login form: %v", ErrLoginFailed, err)
	}

	// The landing element only renders for an authenticated user, so its
	// absence after the wait means the portal rejected us.
	if _, err := o.await(ctx, sess, o.selectors.Landing); err != nil {
		return fmt.Errorf("%w: post-login element %s never appeared: %v", ErrLoginFailed, o.selectors.Landing, err)
	}

	o.logger.Info("login accepted", "url", o.baseURL)
	return nil
}

func (o *Opener) await(ctx context.Context, sess browser.Session, sel browser.Selector) (browser.Element, error) {
	waitCtx, cancel := context.WithTimeout(ctx, o.waitTimeout)
	defer cancel()
	return sess.Find(waitCtx, sel)
}
