package browser

import "context"

// Selector addresses one element on the current page. XPath, when set, is
// used alone and takes precedence. Otherwise Query is a CSS selector, and
// Text optionally narrows the match to elements whose visible text matches
// the given JS-style regular expression.
type Selector struct {
	Query string `yaml:"query,omitempty"`
	Text  string `yaml:"text,omitempty"`
	XPath string `yaml:"xpath,omitempty"`
}

func (s Selector) IsZero() bool {
	return s.Query == "" && s.Text == "" && s.XPath == ""
}

func (s Selector) String() string {
	if s.XPath != "" {
		return "xpath=" + s.XPath
	}
	if s.Text != "" {
		return s.Query + " text=" + s.Text
	}
	return s.Query
}

// Session is a single page in a live automated browser. One session maps to
// one launched browser process; Close releases the process and its profile.
//
// Find blocks until a matching element exists or ctx expires. FindAll
// returns the elements present right now without waiting, which makes it
// the probe for settling checks; it matches by Query or XPath only.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Find(ctx context.Context, sel Selector) (Element, error)
	FindAll(ctx context.Context, sel Selector) ([]Element, error)
	Close() error
}

// Element is one located page element.
type Element interface {
	Click(ctx context.Context) error
	Type(ctx context.Context, text string) error
	Text(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
}
