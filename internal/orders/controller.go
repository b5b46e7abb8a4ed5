// Package orders owns one restaurant's order-pooling session: restoring and
// fetching the snapshot, the acceptance-window countdown and per-order
// accept/reject decisions.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ownerconsole/internal/model"
	"ownerconsole/internal/service"
)

var (
	ErrNoOrders         = errors.New("no orders found for your restaurant at this time")
	ErrFetchInProgress  = errors.New("a fetch is already in progress")
	ErrOrderNotFound    = errors.New("order not found in the current batch")
	ErrAlreadyResponded = errors.New("order already has a response")
	ErrResponseInFlight = errors.New("a response for this order is already being submitted")
	ErrOwnerNotApproved = errors.New("owner account is not fully approved")
	ErrSessionReset     = errors.New("session was reset while the request was running")
)

// API is the slice of the platform client the controller drives.
type API interface {
	FetchOrders(ctx context.Context) (*model.FetchResult, error)
	SubmitResponse(ctx context.Context, orderID string, decision model.Decision) (*model.SubmitResult, error)
	OwnerStatus(ctx context.Context) (*model.OwnerStatus, error)
}

type NoticeKind string

const (
	NoticeError    NoticeKind = "error"
	NoticeAdvisory NoticeKind = "advisory"
	NoticeSuccess  NoticeKind = "success"
)

type Notice struct {
	Kind    NoticeKind
	Text    string
	expires time.Time
}

// State is a read-only copy of the controller for rendering.
type State struct {
	Active    bool
	Snapshot  model.OrderSnapshot
	Countdown Countdown
	Fetching  bool
	InFlight  map[string]bool
	Notice    *Notice
	Pending   int
}

type Controller struct {
	api    API
	now    func() time.Time
	window time.Duration

	mu       sync.Mutex
	active   bool
	snapshot model.OrderSnapshot
	fetching bool
	inFlight map[string]bool
	notice   *Notice
	mounted  bool
	// gen changes on every Reset; results of calls started under an older
	// gen are discarded.
	gen uint64
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

func NewController(api API, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		now:      time.Now,
		window:   Window,
		inFlight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount runs the page-open sequence once per session: the owner status
// check, then Restore. Later calls do nothing until Reset.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.mu.Unlock()

	err := c.CheckOwnerStatus(ctx)
	c.Restore(ctx)
	return err
}

// Restore reinstalls the latest batch the platform still holds. It is best
// effort: failures are logged and an empty answer leaves the session alone.
func (c *Controller) Restore(ctx context.Context) {
	c.mu.Lock()
	active, gen := c.active, c.gen
	c.mu.Unlock()
	if active {
		return
	}

	res, err := c.api.FetchOrders(ctx)
	if err != nil {
		slog.Warn("failed to restore orders", "error", err)
		return
	}
	if len(res.Individual) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active || c.gen != gen {
		return
	}
	c.install(res)
	slog.Info("orders restored", "orders", len(res.Individual), "fetched_at", c.snapshot.FetchedAt)
}

// CheckOwnerStatus sets an error notice when the owner cannot receive
// orders yet. It never blocks fetching.
func (c *Controller) CheckOwnerStatus(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	status, err := c.api.OwnerStatus(ctx)
	if err != nil {
		slog.Warn("status check failed", "error", err)
		return err
	}
	if status.FullyApproved() {
		return nil
	}

	c.mu.Lock()
	if c.gen == gen {
		c.setNotice(NoticeError, "Your account is not fully approved or restaurant UID is not assigned.")
	}
	c.mu.Unlock()
	return ErrOwnerNotApproved
}

// FetchOrders pulls a new batch and replaces the snapshot. An empty batch
// keeps whatever is on screen.
func (c *Controller) FetchOrders(ctx context.Context) error {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return ErrFetchInProgress
	}
	c.fetching = true
	c.notice = nil
	gen := c.gen
	c.mu.Unlock()

	res, err := c.api.FetchOrders(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		slog.Info("discarding fetch from a previous session")
		return ErrSessionReset
	}
	c.fetching = false

	if err != nil {
		slog.Error("fetch orders failed", "error", err)
		c.setNotice(NoticeError, service.Detail(err, "Failed to fetch orders"))
		return err
	}
	if len(res.ServerCumulative) == 0 {
		c.setNotice(NoticeAdvisory, "No orders found for your restaurant at this time.")
		return ErrNoOrders
	}

	c.install(res)
	c.setNotice(NoticeSuccess, "Orders loaded successfully!")
	slog.Info("orders fetched", "orders", len(res.Individual), "dropped", res.Dropped, "fetched_at", c.snapshot.FetchedAt)
	return nil
}

// Respond submits decision for one order and patches it locally once the
// platform confirms. Orders other than id are never blocked.
func (c *Controller) Respond(ctx context.Context, id string, decision model.Decision) error {
	c.mu.Lock()
	order, ok := c.find(id)
	switch {
	case !ok:
		c.mu.Unlock()
		return ErrOrderNotFound
	case order.Responded:
		c.mu.Unlock()
		return ErrAlreadyResponded
	case c.inFlight[id]:
		c.mu.Unlock()
		return ErrResponseInFlight
	}
	c.inFlight[id] = true
	c.notice = nil
	gen := c.gen
	c.mu.Unlock()

	_, err := c.api.SubmitResponse(ctx, id, decision)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		slog.Info("discarding response from a previous session", "order_id", id, "error", err)
		return ErrSessionReset
	}
	delete(c.inFlight, id)

	if err != nil {
		slog.Error("submit response failed", "order_id", id, "decision", decision, "error", err)
		c.setNotice(NoticeError, service.Detail(err, "Failed to submit response"))
		return fmt.Errorf("respond %s: %w", id, err)
	}

	// a fetch may have replaced the batch while the request was out
	if next, ok := ApplyDecision(c.snapshot, id, decision); ok {
		c.snapshot = next
	}
	c.setNotice(NoticeSuccess, fmt.Sprintf("Order %s successfully!", decision))
	slog.Info("order response recorded", "order_id", id, "decision", decision)
	return nil
}

func (c *Controller) Countdown() Countdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown(c.now())
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	st := State{
		Active:    c.active,
		Snapshot:  c.snapshot,
		Countdown: c.countdown(now),
		Fetching:  c.fetching,
		InFlight:  make(map[string]bool, len(c.inFlight)),
	}
	st.Snapshot.Individual = append([]model.CustomerOrder(nil), c.snapshot.Individual...)
	st.Snapshot.Cumulative = append([]model.CumulativeItem(nil), c.snapshot.Cumulative...)
	for id := range c.inFlight {
		st.InFlight[id] = true
	}
	for _, o := range c.snapshot.Individual {
		if !o.Responded {
			st.Pending++
		}
	}
	if c.notice != nil && (c.notice.expires.IsZero() || now.Before(c.notice.expires)) {
		n := *c.notice
		st.Notice = &n
	}
	return st
}

func (c *Controller) DismissNotice() {
	c.mu.Lock()
	c.notice = nil
	c.mu.Unlock()
}

// Reset forgets the session, used when the owner logs out or another
// principal signs in. Calls still running finish without effect.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.fetching = false
	c.inFlight = make(map[string]bool)
	c.active = false
	c.mounted = false
	c.snapshot = model.OrderSnapshot{}
	c.notice = nil
}

func (c *Controller) install(res *model.FetchResult) {
	snap := model.OrderSnapshot{
		Individual: res.Individual,
		Cumulative: Summarize(res.Individual),
	}
	if len(res.ServerCumulative) > 0 && !sameCumulative(snap.Cumulative, res.ServerCumulative) {
		slog.Warn("server cumulative list disagrees with its orders", "server_items", len(res.ServerCumulative), "derived_items", len(snap.Cumulative))
	}
	if len(res.Individual) > 0 && !res.Individual[0].FetchedAt.IsZero() {
		snap.FetchedAt = res.Individual[0].FetchedAt
	} else {
		snap.FetchedAt = c.now()
	}
	c.snapshot = snap
	c.active = true
}

func (c *Controller) find(id string) (model.CustomerOrder, bool) {
	for _, o := range c.snapshot.Individual {
		if o.ID == id {
			return o, true
		}
	}
	return model.CustomerOrder{}, false
}

func (c *Controller) countdown(now time.Time) Countdown {
	if !c.active {
		return Countdown{}
	}
	left := Remaining(c.snapshot.FetchedAt, c.window, now)
	return Countdown{
		Active:    true,
		FetchedAt: c.snapshot.FetchedAt,
		Remaining: left,
		Urgent:    left <= UrgentWithin,
	}
}

func (c *Controller) setNotice(kind NoticeKind, text string) {
	n := &Notice{Kind: kind, Text: text}
	if kind == NoticeSuccess {
		n.expires = c.now().Add(noticeTimeout)
	}
	c.notice = n
}
