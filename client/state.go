package client

import "sync"

// State es el estado compartido de la aplicación.
type State struct {
	User            *User
	IsAuthenticated bool
	CurrentView     string
	CurrentSection  string
	IsLoading       bool
	DashboardData   map[string]interface{}
}

// Patch aplica cambios parciales sobre el estado. Los campos nil no se tocan.
type Patch struct {
	User            **User
	IsAuthenticated *bool
	CurrentView     *string
	CurrentSection  *string
	IsLoading       *bool
	DashboardData   *map[string]interface{}
}

type Listener func(newState, prevState State)

// Store guarda el estado y notifica a los observadores en cada cambio.
// Registrar dos veces el mismo nombre reemplaza al observador anterior.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[string]Listener
}

func NewStore() *Store {
	return &Store{
		state:     State{CurrentView: "home"},
		listeners: make(map[string]Listener),
	}
}

func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set aplica el patch y notifica a los observadores de forma síncrona.
func (s *Store) Set(patch Patch) {
	s.mu.Lock()
	prev := s.state
	if patch.User != nil {
		s.state.User = *patch.User
	}
	if patch.IsAuthenticated != nil {
		s.state.IsAuthenticated = *patch.IsAuthenticated
	}
	if patch.CurrentView != nil {
		s.state.CurrentView = *patch.CurrentView
	}
	if patch.CurrentSection != nil {
		s.state.CurrentSection = *patch.CurrentSection
	}
	if patch.IsLoading != nil {
		s.state.IsLoading = *patch.IsLoading
	}
	if patch.DashboardData != nil {
		s.state.DashboardData = *patch.DashboardData
	}
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next, prev)
	}
}

func (s *Store) Subscribe(name string, fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[name] = fn
}

func (s *Store) Unsubscribe(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, name)
}

// Reset vuelve al estado inicial sin tocar los observadores. Se usa al cerrar sesión.
func (s *Store) Reset() {
	s.mu.Lock()
	prev := s.state
	s.state = State{CurrentView: "home"}
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next, prev)
	}
}
