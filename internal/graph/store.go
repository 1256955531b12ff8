package graph

import (
	"fmt"
	"sync"
)

// Graph is the read-only query surface that credit extraction needs.
type Graph interface {
	// Each returns every object of (subject, predicate) in insertion order
	Each(subject Node, predicate Resource) []Node

	// Any returns the first object of (subject, predicate), or nil
	Any(subject Node, predicate Resource) Node

	// Sym returns a symbolic reference to the resource with the given URI
	Sym(uri string) Resource
}

// Triple is a single subject-predicate-object statement.
type Triple struct {
	Subject   Node
	Predicate Resource
	Object    Node
}

// String returns the triple as an N-Triples line
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Store is an in-memory Graph. Objects keep insertion order per
// (subject, predicate) and duplicate triples are ignored.
type Store struct {
	mu       sync.RWMutex
	index    map[string]map[string][]Node
	seen     map[string]bool
	triples  []Triple
	blankSeq int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		index: make(map[string]map[string][]Node),
		seen:  make(map[string]bool),
	}
}

// Add inserts a triple. Subjects must be Resources or BlankNodes.
func (s *Store) Add(subject Node, predicate Resource, object Node) error {
	switch subject.(type) {
	case Resource, BlankNode:
	default:
		return fmt.Errorf("invalid subject %v: must be a resource or blank node", subject)
	}
	if object == nil {
		return fmt.Errorf("nil object for %s %s", subject, predicate)
	}

	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	id := t.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[id] {
		return nil
	}
	s.seen[id] = true

	sk := subject.key()
	preds, ok := s.index[sk]
	if !ok {
		preds = make(map[string][]Node)
		s.index[sk] = preds
	}
	preds[predicate.URI] = append(preds[predicate.URI], object)
	s.triples = append(s.triples, t)

	return nil
}

// Each implements Graph
func (s *Store) Each(subject Node, predicate Resource) []Node {
	if subject == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	objs := s.index[subject.key()][predicate.URI]
	if len(objs) == 0 {
		return nil
	}
	out := make([]Node, len(objs))
	copy(out, objs)
	return out
}

// Any implements Graph
func (s *Store) Any(subject Node, predicate Resource) Node {
	if subject == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	objs := s.index[subject.key()][predicate.URI]
	if len(objs) == 0 {
		return nil
	}
	return objs[0]
}

// Sym implements Graph
func (s *Store) Sym(uri string) Resource {
	return Resource{URI: uri}
}

// NewBlankNode allocates a blank node with a label unique within the store.
func (s *Store) NewBlankNode() BlankNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blankSeq++
	return BlankNode{ID: fmt.Sprintf("b%d", s.blankSeq)}
}

// Len returns the number of distinct triples
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}

// Triples returns all triples in insertion order
func (s *Store) Triples() []Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Triple, len(s.triples))
	copy(out, s.triples)
	return out
}
