package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_GetSet(t *testing.T) {
	v := NewValue(1)
	assert.Equal(t, 1, v.Get())

	v.Set(2)
	assert.Equal(t, 2, v.Get())
}

func TestValue_WatchReplaysCurrent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue("hola")
	ch := v.Watch(ctx)

	select {
	case got := <-ch:
		assert.Equal(t, "hola", got)
	case <-time.After(time.Second):
		t.Fatal("no replay emission")
	}
}

func TestValue_WatchSeesWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue(0)
	ch := v.Watch(ctx)
	<-ch // replay

	v.Set(7)

	select {
	case got := <-ch:
		assert.Equal(t, 7, got)
	case <-time.After(time.Second):
		t.Fatal("no emission after Set")
	}
}

func TestValue_ConflatesSlowSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue(0)
	ch := v.Watch(ctx)
	<-ch

	// Sin lector: solo debe sobrevivir el último valor.
	v.Set(1)
	v.Set(2)
	v.Set(3)

	select {
	case got := <-ch:
		assert.Equal(t, 3, got)
	case <-time.After(time.Second):
		t.Fatal("no emission")
	}
}

func TestValue_Update(t *testing.T) {
	v := NewValue(10)
	v.Update(func(cur int) int { return cur + 5 })
	assert.Equal(t, 15, v.Get())
}

func TestValue_WatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	v := NewValue(1)
	ch := v.Watch(ctx)
	<-ch

	cancel()

	select {
	case _, open := <-ch:
		require.False(t, open, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}

func TestSignal_NotifyWakesSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSignal()
	ch := s.Subscribe(ctx)

	s.Notify()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no tick")
	}
}

func TestSignal_CoalescesNotifies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSignal()
	ch := s.Subscribe(ctx)

	s.Notify()
	s.Notify()
	s.Notify()

	// Sin lector de por medio, tres Notify dejan un único tick pendiente.
	<-ch
	select {
	case <-ch:
		t.Fatal("notifies not coalesced")
	default:
	}
}
