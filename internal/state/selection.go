package state

import "sync"

// Selection is the color highlighted across the tool menus. One value is
// shared by reference between every menu that shows or changes it.
type Selection struct {
	mu        sync.RWMutex
	hex       string
	listeners []func(hex string)
}

func NewSelection(hex string) *Selection {
	return &Selection{hex: hex}
}

func (s *Selection) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hex
}

// Set stores hex and notifies listeners when it changed.
func (s *Selection) Set(hex string) {
	s.mu.Lock()
	if s.hex == hex {
		s.mu.Unlock()
		return
	}
	s.hex = hex
	ls := append([]func(string){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range ls {
		fn(hex)
	}
}

// OnChanged registers fn to run after every change.
func (s *Selection) OnChanged(fn func(hex string)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
