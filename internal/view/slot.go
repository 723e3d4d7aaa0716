package view

import (
	"bytes"
	"sync"

	g "maragu.dev/gomponents"
)

// Slot is an in-memory stand-in for a page element. Each Replace discards the
// previous content.
type Slot struct {
	mu   sync.Mutex
	node g.Node
	html string
}

// Replace renders node and keeps it as the slot content.
func (s *Slot) Replace(node g.Node) error {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.node = node
	s.html = buf.String()
	return nil
}

// HTML returns the rendered content.
func (s *Slot) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html
}

// Node returns the content node, or nil when nothing was rendered yet.
func (s *Slot) Node() g.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.node
}
