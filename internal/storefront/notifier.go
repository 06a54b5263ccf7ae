package storefront

import (
	"sync"
	"time"
)

// DefaultToastDuration время показа уведомления
const DefaultToastDuration = 3 * time.Second

// Виды уведомлений
const (
	KindInfo  = "info"
	KindError = "error"
)

// Notification активное уведомление
type Notification struct {
	Message string
	Kind    string
	ShownAt time.Time
}

// Notifier показывает не больше одного уведомления. Новое уведомление
// заменяет текущее и отменяет его таймер, каждое снимается через duration.
type Notifier struct {
	mu         sync.Mutex
	current    *Notification
	generation uint64
	timer      *time.Timer
	duration   time.Duration
	clock      func() time.Time
}

// NewNotifier создает новый Notifier
func NewNotifier(duration time.Duration) *Notifier {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Notifier{
		duration: duration,
		clock:    time.Now,
	}
}

// Show показывает уведомление вместо текущего
func (n *Notifier) Show(message, kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.generation++
	gen := n.generation
	n.current = &Notification{Message: message, Kind: kind, ShownAt: n.clock()}
	n.timer = time.AfterFunc(n.duration, func() {
		n.expire(gen)
	})
}

// Current возвращает активное уведомление
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss снимает уведомление досрочно
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.generation++
	n.current = nil
}

// expire снимает уведомление, только если его не успели заменить
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.generation {
		return
	}
	n.current = nil
	n.timer = nil
}
