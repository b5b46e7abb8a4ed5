package orders

import (
	"fmt"
	"time"
)

const (
	Window        = 30 * time.Minute
	UrgentWithin  = 5 * time.Minute
	noticeTimeout = 3 * time.Second
)

type Countdown struct {
	Active    bool
	FetchedAt time.Time
	Remaining time.Duration
	Urgent    bool
}

// Remaining is max(0, fetchedAt+window-now) in whole seconds.
func Remaining(fetchedAt time.Time, window time.Duration, now time.Time) time.Duration {
	left := fetchedAt.Add(window).Sub(now)
	if left <= 0 {
		return 0
	}
	return left.Truncate(time.Second)
}

// String renders the remaining time as m:ss.
func (c Countdown) String() string {
	secs := int(c.Remaining / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
