package background

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunExecutesTask(t *testing.T) {
	done := make(chan struct{})
	Run("test task", func() error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestRunWithInvokesFailureCallback(t *testing.T) {
	boom := errors.New("boom")
	got := make(chan error, 1)
	RunWith("failing task", func() error { return boom }, func(err error) {
		got <- err
	})

	select {
	case err := <-got:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("failure callback never fired")
	}
}

func TestRunAbsorbsPanic(t *testing.T) {
	ran := make(chan struct{})
	Run("panicking task", func() error {
		defer close(ran)
		panic("oh no")
	})

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	// Give the deferred recover a moment; the test passes if nothing crashes.
	time.Sleep(10 * time.Millisecond)
}

func TestRunWithSkipsCallbackOnSuccess(t *testing.T) {
	done := make(chan struct{})
	called := false
	RunWith("ok task", func() error {
		defer close(done)
		return nil
	}, func(error) { called = true })

	<-done
	time.Sleep(10 * time.Millisecond)
	assert.False(t, called)
}
