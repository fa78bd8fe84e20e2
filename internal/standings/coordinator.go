package standings

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"lheq-stats/internal/grid"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "idle"
}

// Presenter turns a snapshot into tables. Build must not keep references to
// tables from an earlier call once it returns.
type Presenter interface {
	Name() string
	Build(snap *Snapshot) []*grid.Table
	ShowError(err error)
}

// Decorator attaches interactive state to built tables.
type Decorator interface {
	Attach(owner string, tables []*grid.Table) error
	Destroy(owner string)
}

// Coordinator reloads the view-model on toggle and filter changes and
// rebuilds every presenter from the result. Only the most recent request may
// change the state; results of older requests are dropped.
type Coordinator struct {
	vm         *ViewModel
	decorator  Decorator
	presenters []Presenter
	logger     *logrus.Logger

	mu          sync.Mutex
	seq         uint64
	fetchTicket uint64
	state       State
	settled     State
	include     bool
	filter      string
	idle        chan struct{}
}

// Status is a consistent view of the coordinator taken under its lock.
type Status struct {
	State              State
	IncludeTournaments bool
	Filter             string
	Snapshot           *Snapshot
	Err                error
}

func NewCoordinator(vm *ViewModel, decorator Decorator, logger *logrus.Logger, includeTournaments bool, presenters ...Presenter) *Coordinator {
	return &Coordinator{
		vm:         vm,
		decorator:  decorator,
		presenters: presenters,
		logger:     logger,
		include:    includeTournaments,
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) IncludeTournaments() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.include
}

func (c *Coordinator) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Coordinator) Snapshot() *Snapshot {
	return c.vm.Current()
}

func (c *Coordinator) Err() error {
	return c.vm.Err()
}

// Read calls fn while no commit can run, so the snapshot it sees matches the
// tables every presenter built from it and the grids attached to them. fn must
// not call back into the coordinator.
func (c *Coordinator) Read(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(Status{
		State:              c.state,
		IncludeTournaments: c.include,
		Filter:             c.filter,
		Snapshot:           c.vm.Current(),
		Err:                c.vm.Err(),
	})
}

// Wait blocks until no fetch is in flight or ctx is done.
func (c *Coordinator) Wait(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateLoading || c.idle == nil {
		c.mu.Unlock()
		return nil
	}
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start performs the initial load with the configured tournament setting.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	include := c.include
	c.mu.Unlock()
	return c.fetch(ctx, include)
}

func (c *Coordinator) SetIncludeTournaments(ctx context.Context, include bool) error {
	return c.fetch(ctx, include)
}

// SetDivisionFilter re-groups the loaded records. The data source is only
// called when nothing usable is loaded. While a fetch is in flight the filter
// is recorded and applied when that fetch completes.
func (c *Coordinator) SetDivisionFilter(ctx context.Context, division string) error {
	c.mu.Lock()
	c.filter = division
	if c.state == StateLoading && c.fetchTicket == c.seq {
		c.mu.Unlock()
		return nil
	}
	include := c.include
	current := c.vm.Current()
	if current == nil || current.IncludeTournaments != include {
		c.mu.Unlock()
		return c.fetch(ctx, include)
	}
	c.seq++
	ticket := c.seq
	c.enterLoading()
	c.mu.Unlock()

	return c.commit(ticket, current.WithDivision(division), nil)
}

func (c *Coordinator) fetch(ctx context.Context, include bool) error {
	c.mu.Lock()
	c.seq++
	ticket := c.seq
	c.fetchTicket = ticket
	c.enterLoading()
	c.include = include
	filter := c.filter
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"request":             ticket,
		"include_tournaments": include,
	}).Debug("Reloading standings")

	snap, err := c.vm.load(ctx, include, filter)
	return c.commit(ticket, snap, err)
}

// enterLoading must be called with c.mu held.
func (c *Coordinator) enterLoading() {
	if c.state != StateLoading {
		c.settled = c.state
	}
	c.state = StateLoading
	if c.idle == nil {
		c.idle = make(chan struct{})
	}
}

// settle must be called with c.mu held.
func (c *Coordinator) settle(state State) {
	c.state = state
	if c.idle != nil {
		close(c.idle)
		c.idle = nil
	}
}

func (c *Coordinator) commit(ticket uint64, snap *Snapshot, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.seq {
		c.logger.WithFields(logrus.Fields{
			"request": ticket,
			"latest":  c.seq,
		}).Debug("Discarding superseded standings result")
		return ErrSuperseded
	}
	c.fetchTicket = 0

	// An abandoned request leaves the displayed standings alone.
	if errors.Is(err, context.Canceled) {
		if current := c.vm.Current(); current != nil {
			c.include = current.IncludeTournaments
		}
		c.settle(c.settled)
		c.logger.WithField("request", ticket).Debug("Standings request canceled")
		return err
	}

	for _, p := range c.presenters {
		c.decorator.Destroy(p.Name())
	}

	if err != nil {
		c.vm.install(nil, err)
		c.settle(StateFailed)
		for _, p := range c.presenters {
			p.ShowError(err)
		}
		c.logger.WithError(err).WithField("request", ticket).Warn("Standings failed to load")
		return err
	}

	if snap.Filter != c.filter {
		snap = snap.WithDivision(c.filter)
	}
	snap.Request = ticket
	c.vm.install(snap, nil)

	built := make([][]*grid.Table, len(c.presenters))
	for i, p := range c.presenters {
		built[i] = p.Build(snap)
	}
	for i, p := range c.presenters {
		if err := c.decorator.Attach(p.Name(), built[i]); err != nil {
			c.logger.WithError(err).WithField("presenter", p.Name()).Error("Failed to attach grid")
		}
	}
	c.settle(StateReady)

	c.logger.WithFields(logrus.Fields{
		"request":             ticket,
		"snapshot":            snap.ID,
		"include_tournaments": snap.IncludeTournaments,
		"division":            snap.Filter,
		"teams":               len(snap.Teams),
	}).Info("Standings ready")
	return nil
}
