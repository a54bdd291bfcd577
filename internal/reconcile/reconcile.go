package reconcile

import (
	"context"
	"fmt"
)

// Relation describes one child-collection family.
type Relation[D, E any] struct {
	// NaturalKey identifies the logical relation a desired record stands for.
	// Desired records sharing a key collapse to the first one. Nil disables deduplication.
	NaturalKey func(D) int64
	// New builds an empty entity bound to the parent, ready to receive copied fields.
	New func() E
}

// Plan is the outcome of a reconciliation. Update entries already carry the desired fields.
type Plan[E any] struct {
	Delete []E
	Update []E
	Insert []E
}

func (p *Plan[E]) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0 && len(p.Insert) == 0
}

// Reconcile partitions persisted and desired into deletes, in-place updates and inserts.
//
// Persisted entities whose id matches no desired record are deleted; matched ones receive the
// desired fields. Desired records with a non-positive id, or with an id that matches nothing
// persisted, become new entities.
func Reconcile[D, E Identifiable](reg *Registry, rel Relation[D, E], desired []D, persisted []E) (*Plan[E], error) {
	copyFn, err := Lookup[D, E](reg)
	if err != nil {
		return nil, err
	}
	if rel.New == nil {
		return nil, fmt.Errorf("reconcile: relation has no constructor")
	}

	desired = Dedup(desired, rel.NaturalKey)

	desiredByID := make(map[int64]D, len(desired))
	for _, d := range desired {
		if id := d.GetID(); id > 0 {
			if _, seen := desiredByID[id]; !seen {
				desiredByID[id] = d
			}
		}
	}

	plan := &Plan[E]{}
	matched := make(map[int64]bool, len(persisted))
	for _, e := range persisted {
		d, ok := desiredByID[e.GetID()]
		if !ok || matched[e.GetID()] {
			plan.Delete = append(plan.Delete, e)
			continue
		}
		matched[e.GetID()] = true
		copyFn(d, e)
		plan.Update = append(plan.Update, e)
	}

	claimed := make(map[int64]bool, len(desiredByID))
	for _, d := range desired {
		id := d.GetID()
		if id > 0 && matched[id] && !claimed[id] {
			claimed[id] = true
			continue
		}
		e := rel.New()
		copyFn(d, e)
		plan.Insert = append(plan.Insert, e)
	}
	return plan, nil
}

// Dedup keeps the first record for every natural key, preserving order.
func Dedup[D any](records []D, key func(D) int64) []D {
	if key == nil || len(records) == 0 {
		return records
	}
	seen := make(map[int64]struct{}, len(records))
	out := make([]D, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Writer persists a plan. Implementations must write through the unit of work carried by ctx.
type Writer[E any] interface {
	Delete(ctx context.Context, e E) error
	Update(ctx context.Context, e E) error
	Insert(ctx context.Context, e E) error
}

// WriterFuncs adapts three repository methods to a Writer.
type WriterFuncs[E any] struct {
	DeleteFn func(ctx context.Context, e E) error
	UpdateFn func(ctx context.Context, e E) error
	InsertFn func(ctx context.Context, e E) error
}

func (w WriterFuncs[E]) Delete(ctx context.Context, e E) error { return w.DeleteFn(ctx, e) }
func (w WriterFuncs[E]) Update(ctx context.Context, e E) error { return w.UpdateFn(ctx, e) }
func (w WriterFuncs[E]) Insert(ctx context.Context, e E) error { return w.InsertFn(ctx, e) }

// Apply writes deletes, then updates, then inserts. It never commits.
func Apply[E any](ctx context.Context, plan *Plan[E], w Writer[E]) error {
	for _, e := range plan.Delete {
		if err := w.Delete(ctx, e); err != nil {
			return fmt.Errorf("reconcile delete: %w", err)
		}
	}
	for _, e := range plan.Update {
		if err := w.Update(ctx, e); err != nil {
			return fmt.Errorf("reconcile update: %w", err)
		}
	}
	for _, e := range plan.Insert {
		if err := w.Insert(ctx, e); err != nil {
			return fmt.Errorf("reconcile insert: %w", err)
		}
	}
	return nil
}
