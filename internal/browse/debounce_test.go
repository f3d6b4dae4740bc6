package browse

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsOnlyLastCall(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Value
	done := make(chan struct{}, 1)

	for _, q := range []string{"p", "ph", "pho", "phone"} {
		q := q
		d.Call(func() {
			calls.Add(1)
			last.Store(q)
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "phone", last.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(time.Hour)
	assert.False(t, d.Stop())

	d.Call(func() { t.Error("stopped call ran") })
	assert.True(t, d.Stop())
	assert.False(t, d.Stop())
}
