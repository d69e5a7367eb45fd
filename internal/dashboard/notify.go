package dashboard

import (
	"sync"
	"time"
)

// ToastKind selects the icon and color of a notification.
type ToastKind string

const (
	KindSuccess ToastKind = "success"
	KindError   ToastKind = "error"
	KindInfo    ToastKind = "info"
)

// toastTTL is how long a toast stays visible before auto-dismissing.
const toastTTL = 3 * time.Second

// Toast is one transient, auto-dismissing notification.
type Toast struct {
	Message string
	Kind    ToastKind
	Icon    string
	Color   string
	Expires time.Time
}

var toastStyles = map[ToastKind]struct {
	icon  string
	color string
}{
	KindSuccess: {"✅", "#4CAF50"},
	KindError:   {"❌", "#f44336"},
	KindInfo:    {"ℹ️", "#2196F3"},
}

// Notifier collects toasts and expires them after toastTTL. The clock is a
// field so tests can control expiry.
type Notifier struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

// Notify raises a toast of the given kind.
func (n *Notifier) Notify(message string, kind ToastKind) {
	style := toastStyles[kind]

	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, Toast{
		Message: message,
		Kind:    kind,
		Icon:    style.icon,
		Color:   style.color,
		Expires: n.now().Add(toastTTL),
	})
}

// Active returns the toasts still within their display window, pruning the
// rest.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept

	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}
