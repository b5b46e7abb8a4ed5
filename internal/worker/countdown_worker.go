package worker

import (
	"context"
	"log/slog"
	"time"

	"ownerconsole/internal/live"
	"ownerconsole/internal/orders"
)

type StateSource interface {
	State() orders.State
}

type Publisher interface {
	Broadcast(t live.Tick) int
}

// CountdownWorker republishes the acceptance-window countdown every
// interval. It only reads controller state.
type CountdownWorker struct {
	source    StateSource
	publisher Publisher
	interval  time.Duration
	wasActive bool
}

func NewCountdownWorker(source StateSource, publisher Publisher) *CountdownWorker {
	return &CountdownWorker{
		source:    source,
		publisher: publisher,
		interval:  time.Second,
	}
}

func (w *CountdownWorker) Start(ctx context.Context) {
	slog.Info("starting countdown worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("countdown worker stopped")
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

// tick publishes while a session is active, plus one final inactive tick
// when the session ends so pages stop showing a stale clock.
func (w *CountdownWorker) tick() {
	st := w.source.State()
	if !st.Active && !w.wasActive {
		return
	}
	w.wasActive = st.Active

	t := TickFrom(st)
	n := w.publisher.Broadcast(t)
	if t.Remaining == 0 && st.Active {
		slog.Debug("acceptance window elapsed", "clients", n)
	}
}

func TickFrom(st orders.State) live.Tick {
	return live.Tick{
		Active:    st.Active,
		Remaining: int(st.Countdown.Remaining / time.Second),
		Display:   st.Countdown.String(),
		Urgent:    st.Countdown.Urgent,
		Pending:   st.Pending,
	}
}
