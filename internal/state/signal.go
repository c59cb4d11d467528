package state

import (
	"context"
	"sync"
)

// Signal notifica cambios sin payload. Los stores lo usan para avisar a sus
// streams de lectura que deben re-consultar. Las notificaciones se coalescen:
// varios Notify seguidos pueden colapsar en un solo tick.
type Signal struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func NewSignal() *Signal {
	return &Signal{subs: make(map[int]chan struct{})}
}

// Notify despierta a todos los suscriptores.
func (s *Signal) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default: // ya hay un tick pendiente
		}
	}
}

// Subscribe devuelve un canal que recibe un tick por cada cambio posterior.
// Se cierra cuando ctx termina.
func (s *Signal) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}
