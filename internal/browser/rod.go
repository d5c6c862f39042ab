package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"betfast-props-scraper/internal/observability"
)

// Options controls the Chrome instance backing a RodSession.
type Options struct {
	// ChromePath points at a Chrome/Chromium binary. Empty lets rod
	// resolve one, downloading a managed revision if none is installed.
	ChromePath string
	Headless   bool
}

// RodSession drives a real Chrome over the DevTools protocol. It holds a
// single page for the whole session.
type RodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   *observability.Logger
}

// Launch starts Chrome and opens the session's page.
func Launch(opts Options, logger *observability.Logger) (*RodSession, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage")
	if opts.ChromePath != "" {
		l = l.Bin(opts.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("open page: %w", err)
	}

	logger.Debug("browser launched",
		"headless", opts.Headless,
		"chrome_path", opts.ChromePath)

	return &RodSession{launcher: l, browser: b, page: page, logger: logger}, nil
}

func (s *RodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, err)
	}
	return nil
}

func (s *RodSession) Find(ctx context.Context, sel Selector) (Element, error) {
	page := s.page.Context(ctx)

	var (
		el  *rod.Element
		err error
	)
	switch {
	case sel.XPath != "":
		el, err = page.ElementX(sel.XPath)
	case sel.Text != "":
		el, err = page.ElementR(cssOrAny(sel.Query), sel.Text)
	default:
		el, err = page.Element(sel.Query)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", sel, err)
	}

	return &rodElement{el: el}, nil
}

func (s *RodSession) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	page := s.page.Context(ctx)

	var (
		els rod.Elements
		err error
	)
	if sel.XPath != "" {
		els, err = page.ElementsX(sel.XPath)
	} else {
		els, err = page.Elements(sel.Query)
	}
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", sel, err)
	}

	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out, nil
}

// Close shuts the browser down and removes the launcher's temp profile.
func (s *RodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

func cssOrAny(query string) string {
	if query == "" {
		return "*"
	}
	return query
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("wait visible: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

func (e *rodElement) Type(ctx context.Context, text string) error {
	if err := e.el.Context(ctx).Input(text); err != nil {
		return fmt.Errorf("input text: %w", err)
	}
	return nil
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *rodElement) HTML(ctx context.Context) (string, error) {
	return e.el.Context(ctx).HTML()
}
