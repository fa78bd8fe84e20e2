package grid

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrAlreadyAttached means a table still has a live instance. Callers must
// Destroy the owner's previous instances before attaching again.
var ErrAlreadyAttached = errors.New("grid already attached")

// Registry tracks the live instances of every owner.
type Registry struct {
	mu        sync.Mutex
	instances map[string]map[string]*Instance
	logger    *logrus.Logger
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		instances: make(map[string]map[string]*Instance),
		logger:    logger,
	}
}

// Attach creates an instance for each non-empty table. Nothing is attached
// when any table already has a live instance.
func (r *Registry) Attach(owner string, tables []*Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.instances[owner]
	for _, table := range tables {
		if table == nil || table.Empty() {
			continue
		}
		if _, exists := live[table.ID]; exists {
			return fmt.Errorf("%w: %s/%s", ErrAlreadyAttached, owner, table.ID)
		}
	}
	if live == nil {
		live = make(map[string]*Instance)
		r.instances[owner] = live
	}
	for _, table := range tables {
		if table == nil || table.Empty() {
			continue
		}
		live[table.ID] = newInstance(table)
	}
	r.logger.WithFields(logrus.Fields{
		"owner": owner,
		"live":  len(live),
	}).Debug("grid attached")
	return nil
}

func (r *Registry) Destroy(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyLocked(owner)
}

func (r *Registry) destroyLocked(owner string) {
	live, ok := r.instances[owner]
	if !ok {
		return
	}
	for _, inst := range live {
		inst.destroy()
	}
	delete(r.instances, owner)
	r.logger.WithField("owner", owner).Debug("grid destroyed")
}

// DestroyPrefix destroys every owner whose key starts with prefix.
func (r *Registry) DestroyPrefix(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for owner := range r.instances {
		if strings.HasPrefix(owner, prefix) {
			r.destroyLocked(owner)
		}
	}
}

func (r *Registry) Live(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances[owner])
}

func (r *Registry) LiveTotal() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, live := range r.instances {
		total += len(live)
	}
	return total
}

func (r *Registry) Instance(owner, tableID string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[owner][tableID]
	return inst, ok
}

// Scope returns a view of the registry whose owners are prefixed with name.
func (r *Registry) Scope(name string) *Scope {
	return &Scope{registry: r, prefix: name + ":"}
}

type Scope struct {
	registry *Registry
	prefix   string
}

func (s *Scope) Owner(name string) string {
	return s.prefix + name
}

func (s *Scope) Attach(owner string, tables []*Table) error {
	return s.registry.Attach(s.Owner(owner), tables)
}

func (s *Scope) Destroy(owner string) {
	s.registry.Destroy(s.Owner(owner))
}

func (s *Scope) Live(owner string) int {
	return s.registry.Live(s.Owner(owner))
}

func (s *Scope) Instance(owner, tableID string) (*Instance, bool) {
	return s.registry.Instance(s.Owner(owner), tableID)
}

// Close destroys every instance in the scope.
func (s *Scope) Close() {
	s.registry.DestroyPrefix(s.prefix)
}
