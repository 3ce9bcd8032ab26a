package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyWithoutHandlerIsNoop(t *testing.T) {
	notifier := NewNotifier()
	assert.NotPanics(t, func() { notifier.NotifyExpired("user-1") })
}

func TestNotifyInvokesHandlerWithHint(t *testing.T) {
	notifier := NewNotifier()

	var seen []string
	notifier.SetExpiredHandler(func(userId string) { seen = append(seen, userId) })

	notifier.NotifyExpired("user-1")
	notifier.NotifyExpired("")
	assert.Equal(t, []string{"user-1", ""}, seen)
}

func TestLastRegisteredHandlerWins(t *testing.T) {
	notifier := NewNotifier()

	var got string
	notifier.SetExpiredHandler(func(string) { got = "first" })
	notifier.SetExpiredHandler(func(string) { got = "second" })

	notifier.NotifyExpired("user-1")
	assert.Equal(t, "second", got)
}

func TestClearExpiredHandler(t *testing.T) {
	notifier := NewNotifier()

	calls := 0
	notifier.SetExpiredHandler(func(string) { calls++ })
	notifier.ClearExpiredHandler()

	notifier.NotifyExpired("user-1")
	assert.Zero(t, calls)
}

func TestHandlerMayClearItself(t *testing.T) {
	notifier := NewNotifier()

	calls := 0
	notifier.SetExpiredHandler(func(string) {
		calls++
		notifier.ClearExpiredHandler()
	})

	notifier.NotifyExpired("user-1")
	notifier.NotifyExpired("user-1")
	assert.Equal(t, 1, calls)
}

func TestConcurrentNotifyAndRegister(t *testing.T) {
	notifier := NewNotifier()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			notifier.SetExpiredHandler(func(string) {})
		}()
		go func() {
			defer wg.Done()
			notifier.NotifyExpired("user-1")
		}()
	}
	wg.Wait()
}
