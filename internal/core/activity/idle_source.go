package activity

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// IdleReader returns the duration since the last OS-level user input.
type IdleReader interface {
	IdleDuration() (time.Duration, error)
}

// IdleSource polls an IdleReader and reports input whenever the OS idle
// counter shows activity since the previous poll.
type IdleSource struct {
	reader   IdleReader
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewIdleSource creates a polling source.
func NewIdleSource(reader IdleReader, interval time.Duration) *IdleSource {
	if interval <= 0 {
		interval = time.Second
	}
	return &IdleSource{
		reader:   reader,
		interval: interval,
		now:      time.Now,
	}
}

// Start probes the reader once and begins polling.
func (source *IdleSource) Start(report func(at time.Time)) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.stopCh != nil {
		return nil
	}
	if _, err := source.reader.IdleDuration(); err != nil {
		return fmt.Errorf("idle source: %w", err)
	}

	source.stopCh = make(chan struct{})
	source.doneCh = make(chan struct{})
	go source.poll(report, source.stopCh, source.doneCh)
	return nil
}

// Stop ends polling.
func (source *IdleSource) Stop() {
	source.mu.Lock()
	if source.stopCh == nil {
		source.mu.Unlock()
		return
	}
	close(source.stopCh)
	doneCh := source.doneCh
	source.stopCh = nil
	source.doneCh = nil
	source.mu.Unlock()

	<-doneCh
}

func (source *IdleSource) poll(report func(at time.Time), stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(source.interval)
	defer ticker.Stop()

	lastPoll := source.now()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			now := source.now()
			source.observe(now, now.Sub(lastPoll), report)
			lastPoll = now
		}
	}
}

func (source *IdleSource) observe(now time.Time, sincePoll time.Duration, report func(at time.Time)) {
	idle, err := source.reader.IdleDuration()
	if err != nil {
		log.Printf("idle poll: %v", err)
		return
	}
	if idle < sincePoll {
		report(now.Add(-idle))
	}
}
