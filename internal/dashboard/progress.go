package dashboard

import (
	"sync"
	"time"
)

const (
	progressInterval = 200 * time.Millisecond
	progressStep     = 5
)

// Progress is the deploy tab's progress bar. It is cosmetic: it advances by a
// fixed step on a fixed interval regardless of how the deployment is actually
// going, and is cleared explicitly by the completion path.
type Progress struct {
	mu      sync.Mutex
	percent int
	active  bool
	stop    chan struct{}
}

func NewProgress() *Progress {
	return &Progress{}
}

// Start resets the bar and begins ticking. Starting an already running bar
// restarts it from zero.
func (p *Progress) Start() {
	p.mu.Lock()
	if p.active {
		close(p.stop)
	}
	p.percent = 0
	p.active = true
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.advance()
			}
		}
	}()
}

func (p *Progress) advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	if p.percent += progressStep; p.percent > 100 {
		p.percent = 100
	}
}

// Percent reports the current bar position.
func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent
}

// Active reports whether the bar is showing.
func (p *Progress) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Clear hides the bar and stops its ticker.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		close(p.stop)
		p.active = false
	}
	p.percent = 0
}
