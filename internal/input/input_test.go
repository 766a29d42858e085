package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct{ n int }

func (c *counter) Call(Event) { c.n++ }

func TestHooksDispatchInOrder(t *testing.T) {
	var h Hooks
	var got []string
	h.Add(HookFunc(func(ev Event) { got = append(got, "a:"+ev.Key.String()) }))
	h.Add(HookFunc(func(ev Event) { got = append(got, "b:"+ev.Key.String()) }))

	h.Dispatch(Event{Key: KeyJump})
	assert.Equal(t, []string{"a:jump", "b:jump"}, got)
}

func TestHooksRemoveAndClear(t *testing.T) {
	var h Hooks
	a, b := &counter{}, &counter{}
	h.Add(a)
	h.Add(b)
	h.Add(a)
	h.Remove(a)
	assert.Equal(t, 1, h.Len())

	h.Dispatch(Event{Key: KeyLeft})
	assert.Zero(t, a.n)
	assert.Equal(t, 1, b.n)

	h.Clear()
	h.Dispatch(Event{Key: KeyLeft})
	assert.Equal(t, 1, b.n)
}

type selfRemover struct {
	hooks *Hooks
	n     int
}

func (r *selfRemover) Call(Event) {
	r.n++
	r.hooks.Remove(r)
}

func TestHookMayRemoveItself(t *testing.T) {
	var h Hooks
	r := &selfRemover{hooks: &h}
	after := &counter{}
	h.Add(r)
	h.Add(after)

	h.Dispatch(Event{Key: KeyJump})
	h.Dispatch(Event{Key: KeyJump})
	assert.Equal(t, 1, r.n)
	assert.Equal(t, 2, after.n)
}

func TestStateProvider(t *testing.T) {
	s := State{KeyLeft: true}
	assert.True(t, s.Held(KeyLeft))
	assert.False(t, s.Held(KeyRight))
	assert.Equal(t, "unknown", Key(200).String())
}
