package out

import (
	"sync"
	"time"
)

// TickerScheduler runs each schedule on its own goroutine driven by a
// time.Ticker.
type TickerScheduler struct{}

func NewTickerScheduler() TickerScheduler {
	return TickerScheduler{}
}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// a cancel racing with the tick wins
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return func() {
		once.Do(func() { close(stop) })
	}
}
