package browser

import (
	"context"
	"sync"
)

// FakeSession scripts the automation capability for tests. Elements are
// bound to the String form of their selector. A Find for an unscripted
// selector blocks until ctx expires, mimicking a driver wait that times
// out, so callers must bound their lookups.
type FakeSession struct {
	mu sync.Mutex

	elements  map[string]*FakeElement
	rowPolls  map[string][]int
	pollIndex map[string]int

	FindCalls    []string
	FindAllCalls []string
	Navigated    []string

	NavigateErr error
	CloseErr    error
	Closed      bool
}

func NewFakeSession() *FakeSession {
	return &FakeSession{
		elements:  make(map[string]*FakeElement),
		rowPolls:  make(map[string][]int),
		pollIndex: make(map[string]int),
	}
}

// Script makes el findable through sel.
func (s *FakeSession) Script(sel Selector, el *FakeElement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements[sel.String()] = el
}

// Unscript removes an element binding so the selector times out again.
func (s *FakeSession) Unscript(sel Selector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elements, sel.String())
}

// ScriptRowCounts sets the sizes of successive FindAll results for sel;
// once exhausted the last count repeats.
func (s *FakeSession) ScriptRowCounts(sel Selector, counts ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rowPolls[sel.String()] = counts
}

func (s *FakeSession) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Navigated = append(s.Navigated, url)
	return s.NavigateErr
}

func (s *FakeSession) Find(ctx context.Context, sel Selector) (Element, error) {
	s.mu.Lock()
	s.FindCalls = append(s.FindCalls, sel.String())
	el, ok := s.elements[sel.String()]
	s.mu.Unlock()

	if !ok {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return el, nil
}

func (s *FakeSession) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sel.String()
	s.FindAllCalls = append(s.FindAllCalls, key)

	counts, ok := s.rowPolls[key]
	if !ok || len(counts) == 0 {
		return nil, nil
	}

	i := s.pollIndex[key]
	if i >= len(counts) {
		i = len(counts) - 1
	} else {
		s.pollIndex[key] = i + 1
	}

	out := make([]Element, counts[i])
	for j := range out {
		out[j] = &FakeElement{}
	}
	return out, nil
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return s.CloseErr
}

// PollCount reports how many FindAll calls sel has received.
func (s *FakeSession) PollCount(sel Selector) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, key := range s.FindAllCalls {
		if key == sel.String() {
			n++
		}
	}
	return n
}

// FakeElement records the interactions performed on it.
type FakeElement struct {
	mu sync.Mutex

	TextValue string
	HTMLValue string

	ClickErr error
	TypeErr  error

	Clicks int
	Typed  []string
}

func (e *FakeElement) Click(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Clicks++
	return e.ClickErr
}

func (e *FakeElement) Type(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Typed = append(e.Typed, text)
	return e.TypeErr
}

func (e *FakeElement) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.TextValue, nil
}

func (e *FakeElement) HTML(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.HTMLValue, nil
}
