// Package state provee los contenedores reactivos que usan los view-models
// y los stores: un valor observable con replay del último valor al suscribirse.
package state

import (
	"context"
	"sync"
)

// Value es un contenedor mutable observable.
// Cada suscriptor recibe el valor vigente al suscribirse y luego cada escritura.
// La entrega es conflated: si un suscriptor va lento, solo conserva el último valor
// pendiente (semántica last-write-wins, igual que un StateFlow).
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]chan T
	next int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:  initial,
		subs: make(map[int]chan T),
	}
}

// Get devuelve el valor vigente.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set publica un valor nuevo a todos los suscriptores.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	for _, ch := range v.subs {
		Push(ch, val)
	}
}

// Update aplica fn sobre el valor vigente de forma atómica (un escritor a la vez).
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = fn(v.cur)
	for _, ch := range v.subs {
		Push(ch, v.cur)
	}
}

// Watch entrega un stream con el valor vigente primero y luego cada escritura.
// El canal se cierra cuando ctx termina.
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = ch
	ch <- v.cur // replay: cap 1 garantiza que no bloquea
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
		// No cerramos ch bajo el lock para no competir con push;
		// una vez fuera del mapa nadie más escribe en él.
		close(ch)
	}()

	return ch
}

// Push entrega sin bloquear sobre un canal con buffer 1: si el buffer está
// lleno descarta el valor viejo (conflation, last-write-wins).
func Push[T any](ch chan T, val T) {
	for {
		select {
		case ch <- val:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
