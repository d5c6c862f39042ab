package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"betfast-props-scraper/internal/auth"
	"betfast-props-scraper/internal/browser"
	"betfast-props-scraper/internal/export"
	"betfast-props-scraper/internal/nav"
	"betfast-props-scraper/internal/observability"
	"betfast-props-scraper/internal/scrape"
)

var testLogger = observability.NewLogger("", "error")

const propsViewHTML = `
<table>
  <tr><th>Player</th><th>Prop</th><th>Line</th><th>Price</th></tr>
  <tr class="game"><td>A. Judge</td><td>HR</td><td>0.5</td><td>+150</td></tr>
  <tr class="game"><td>M. Trout</td><td>Hits</td><td>1.5</td><td>-110</td></tr>
</table>`

// fixture wires a full pipeline against one scripted session, with the
// CSV writer pointed at a temp file.
type fixture struct {
	sess     *browser.FakeSession
	launches int
	orch     *Orchestrator
	outPath  string

	loginSel auth.LoginSelectors
	steps    []nav.Step
	spec     scrape.TableSpec
	rowSel   browser.Selector
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		sess:    browser.NewFakeSession(),
		outPath: filepath.Join(t.TempDir(), "props.csv"),
		loginSel: auth.LoginSelectors{
			UsernameField: browser.Selector{Query: "#user"},
			PasswordField: browser.Selector{Query: "#pass"},
			SubmitButton:  browser.Selector{Query: "#submit"},
			Landing:       browser.Selector{Query: "a", Text: "Sports"},
		},
		steps: []nav.Step{
			{Name: "mlb", Selector: browser.Selector{Query: "a", Text: "MLB"}},
			{Name: "player_props", Selector: browser.Selector{Query: "a", Text: "Player Props"}},
		},
		spec: scrape.TableSpec{
			Root:     browser.Selector{Query: "table"},
			RowQuery: "tr.game",
			Columns:  []string{"Player", "Prop", "Line", "Price"},
		},
	}
	f.rowSel = browser.Selector{Query: f.spec.RowQuery}
	ready := browser.Selector{Query: "h3", Text: "Player Props"}

	f.sess.Script(f.loginSel.UsernameField, &browser.FakeElement{})
	f.sess.Script(f.loginSel.PasswordField, &browser.FakeElement{})
	f.sess.Script(f.loginSel.SubmitButton, &browser.FakeElement{})
	f.sess.Script(f.loginSel.Landing, &browser.FakeElement{})
	for _, s := range f.steps {
		f.sess.Script(s.Selector, &browser.FakeElement{})
	}
	f.sess.Script(ready, &browser.FakeElement{})
	f.sess.Script(f.spec.Root, &browser.FakeElement{HTMLValue: propsViewHTML})
	f.sess.ScriptRowCounts(f.rowSel, 2, 2)

	launch := func() (browser.Session, error) {
		f.launches++
		return f.sess, nil
	}

	timeout := 50 * time.Millisecond
	opener := auth.NewOpener(launch, "https://portal.test/", f.loginSel, timeout, testLogger)
	navigator := nav.NewNavigator(f.steps, ready, timeout, timeout, testLogger)
	extractor := scrape.NewExtractor(f.spec, timeout, scrape.Settle{
		PollInterval: time.Millisecond,
		StablePolls:  2,
		MaxWait:      100 * time.Millisecond,
	}, testLogger)
	writer := export.NewCSVWriter(f.outPath, testLogger)

	f.orch = NewOrchestrator(opener, navigator, extractor, writer, testLogger)
	return f
}

func TestRunEndToEnd(t *testing.T) {
	f := newFixture(t)

	stats, err := f.orch.Run(context.Background(), auth.Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Rows != 2 || stats.Columns != 4 {
		t.Errorf("stats = %+v, want 2 rows x 4 columns", stats)
	}
	if !f.sess.Closed {
		t.Errorf("session must be closed after a successful run")
	}

	data, err := os.ReadFile(f.outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "Player,Prop,Line,Price\nA. Judge,HR,0.5,+150\nM. Trout,Hits,1.5,-110\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}

func TestRunWritesHeaderOnlyFileForEmptyTable(t *testing.T) {
	f := newFixture(t)
	f.sess.Script(f.spec.Root, &browser.FakeElement{
		HTMLValue: `<table><tr><th>Player</th><th>Prop</th><th>Line</th><th>Price</th></tr></table>`,
	})
	f.sess.ScriptRowCounts(f.rowSel, 0, 0)

	stats, err := f.orch.Run(context.Background(), auth.Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Run() error = %v: an empty table is a valid run", err)
	}
	if stats.Rows != 0 {
		t.Errorf("stats.Rows = %d, want 0", stats.Rows)
	}

	data, err := os.ReadFile(f.outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "Player,Prop,Line,Price\n" {
		t.Errorf("output = %q, want the header line only", string(data))
	}
}

func TestRunAbortsBeforeLaunchWithoutPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.Run(context.Background(), auth.Credentials{Username: "u"})
	if !errors.Is(err, auth.ErrMissingCredentials) {
		t.Fatalf("Run() error = %v, want ErrMissingCredentials", err)
	}
	if f.launches != 0 {
		t.Errorf("launches = %d, want 0: credentials are checked before any browser starts", f.launches)
	}
	if _, statErr := os.Stat(f.outPath); !os.IsNotExist(statErr) {
		t.Errorf("no output file may appear on a failed run")
	}
}

func TestRunClosesSessionWhenNavigationFails(t *testing.T) {
	f := newFixture(t)
	f.sess.Unscript(f.steps[1].Selector)

	_, err := f.orch.Run(context.Background(), auth.Credentials{Username: "u", Password: "p"})

	var stepErr *nav.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Run() error = %v, want *nav.StepError", err)
	}
	if stepErr.Step != "player_props" {
		t.Errorf("StepError.Step = %q, want %q", stepErr.Step, "player_props")
	}
	if !f.sess.Closed {
		t.Errorf("session must be closed when navigation fails")
	}
	if _, statErr := os.Stat(f.outPath); !os.IsNotExist(statErr) {
		t.Errorf("no output file may appear on a failed run")
	}
}

func TestRunClosesSessionWhenWriteFails(t *testing.T) {
	f := newFixture(t)
	failing := export.NewCSVWriter(filepath.Join(t.TempDir(), "missing", "props.csv"), testLogger)
	f.orch.writer = failing

	_, err := f.orch.Run(context.Background(), auth.Credentials{Username: "u", Password: "p"})
	if err == nil {
		t.Fatalf("Run() must surface the write failure")
	}
	if !f.sess.Closed {
		t.Errorf("session must be closed when the write fails")
	}
}
