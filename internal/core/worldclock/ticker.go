package worldclock

import "time"

// Clock is the time source used for every computation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Ticker is the periodic scheduling primitive shared by all clocks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker with the given period.
type TickerFactory func(period time.Duration) Ticker

type systemTicker struct {
	ticker *time.Ticker
}

// NewSystemTicker wraps time.NewTicker.
func NewSystemTicker(period time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(period)}
}

func (ticker *systemTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker *systemTicker) Stop() {
	ticker.ticker.Stop()
}
