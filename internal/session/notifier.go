package session

import "sync"

// ExpiredHandler reacts to an expired session. The userId hint is the
// subject of the expired token when it could still be parsed, otherwise
// empty.
type ExpiredHandler func(userId string)

// Notifier holds at most one expired-session handler. Registration is
// last-write-wins; firing with no handler registered is a no-op.
type Notifier struct {
	mu      sync.Mutex
	handler ExpiredHandler
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) SetExpiredHandler(handler ExpiredHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handler = handler
}

func (n *Notifier) ClearExpiredHandler() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handler = nil
}

// NotifyExpired invokes the registered handler, if any. The handler runs
// outside the lock so it may re-register or clear itself.
func (n *Notifier) NotifyExpired(userId string) {
	n.mu.Lock()
	handler := n.handler
	n.mu.Unlock()

	if handler != nil {
		handler(userId)
	}
}
