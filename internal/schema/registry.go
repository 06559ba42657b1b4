package schema

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Registry is the process-wide collection of loaded database schemas.
//
// Reads vastly outnumber writes: tools hold a registry for their whole
// lifetime while registration happens at most a handful of times (startup
// plus the occasional runtime add). Registration therefore publishes a fresh
// snapshot via atomic pointer swap instead of locking readers out; an
// in-flight query keeps seeing the snapshot it started with.
type Registry struct {
	snapshot atomic.Pointer[map[string]*Database]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := make(map[string]*Database)
	r.snapshot.Store(&empty)
	return r
}

// Register publishes a new snapshot containing the given database. A
// database with the same name replaces the previous entry.
func (r *Registry) Register(db *Database) error {
	if db == nil || db.Name == "" {
		return fmt.Errorf("cannot register database without a name")
	}
	for {
		old := r.snapshot.Load()
		next := make(map[string]*Database, len(*old)+1)
		for k, v := range *old {
			next[k] = v
		}
		next[db.Name] = db
		if r.snapshot.CompareAndSwap(old, &next) {
			return nil
		}
	}
}

// Get returns the schema for a database name.
func (r *Registry) Get(name string) (*Database, error) {
	snap := *r.snapshot.Load()
	db, ok := snap[name]
	if !ok {
		return nil, &UnknownDatabaseError{Name: name, Available: keysOf(snap)}
	}
	return db, nil
}

// Names returns all registered database names, sorted for deterministic
// enumeration.
func (r *Registry) Names() []string {
	return keysOf(*r.snapshot.Load())
}

// Len returns the number of registered databases.
func (r *Registry) Len() int {
	return len(*r.snapshot.Load())
}

// All returns the registered databases in name order.
func (r *Registry) All() []*Database {
	snap := *r.snapshot.Load()
	dbs := make([]*Database, 0, len(snap))
	for _, name := range keysOf(snap) {
		dbs = append(dbs, snap[name])
	}
	return dbs
}

func keysOf(m map[string]*Database) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
