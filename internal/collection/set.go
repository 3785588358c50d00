package collection

import "sync"

// OrderedSet keeps unique keys in insertion order.
type OrderedSet[K comparable] struct {
	index map[K]int
	keys  []K
	mux   sync.RWMutex
}

// Add appends k unless already present, returns true when added
func (s *OrderedSet[K]) Add(k K) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.keys)
	s.keys = append(s.keys, k)
	return true
}

// Has returns true if k is in the set
func (s *OrderedSet[K]) Has(k K) bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	_, ok := s.index[k]
	return ok
}

// Remove deletes k preserving order of the remaining keys
func (s *OrderedSet[K]) Remove(k K) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	pos, ok := s.index[k]
	if !ok {
		return false
	}
	delete(s.index, k)
	s.keys = append(s.keys[:pos], s.keys[pos+1:]...)
	for i := pos; i < len(s.keys); i++ {
		s.index[s.keys[i]] = i
	}
	return true
}

// Len returns number of keys
func (s *OrderedSet[K]) Len() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.keys)
}

// Keys returns a snapshot of keys in insertion order, safe to iterate while removing.
func (s *OrderedSet[K]) Keys() []K {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]K(nil), s.keys...)
}

func NewOrderedSet[K comparable](keys ...K) *OrderedSet[K] {
	ret := &OrderedSet[K]{index: make(map[K]int, len(keys))}
	for _, k := range keys {
		ret.Add(k)
	}
	return ret
}
