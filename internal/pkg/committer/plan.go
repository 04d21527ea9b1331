// Package committer applies collected Spanner mutations atomically.
//
// Repositories never write: they return mutations. A usecase loads its
// aggregates, calls domain methods, gathers the repositories' mutations and
// the outbox mutations for the recorded events into one CommitPlan, and
// applies it in a single transaction:
//
//	rate, err := rates.GetByID(ctx, rateID)
//	if err := rate.Activate(now); err != nil {
//	    return err
//	}
//	plan := committer.NewPlan()
//	plan.Add(rates.UpdateMut(rate))
//	plan.AddMultiple(outbox.EventMuts(rate.DomainEvents()))
//	return c.ApplyWithVersionCheck(ctx, committer.RateVersion(rate.ID(), rate.Version()), plan)
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

var (
	// ErrVersionConflict means the row changed since the aggregate was loaded.
	ErrVersionConflict = errors.New("optimistic lock conflict")
	// ErrRowNotFound means the version-checked row no longer exists.
	ErrRowNotFound = errors.New("version-checked row not found")
)

// CommitPlan collects mutations from multiple repositories.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{mutations: make([]*spanner.Mutation, 0)}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionCheck names the row whose version column must still equal Expected at commit.
type VersionCheck struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// RateVersion is the check for a rate row.
func RateVersion(rateID string, expected int64) VersionCheck {
	return VersionCheck{Table: "rates", Key: spanner.Key{rateID}, Column: "version", Expected: expected}
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ReadWrite runs fn in a read-write transaction. fn reads what it needs and buffers its writes on txn.
func (c *Committer) ReadWrite(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	if _, err := c.client.ReadWriteTransaction(ctx, fn); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck applies the plan only if the checked row still carries the expected version.
// It returns ErrVersionConflict or ErrRowNotFound when the check fails.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if err := verifyVersion(ctx, txn, check); err != nil {
			return err
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrRowNotFound) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}
	return nil
}

func verifyVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, check VersionCheck) error {
	row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{check.Column})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return fmt.Errorf("%w: %s %v", ErrRowNotFound, check.Table, check.Key)
		}
		return fmt.Errorf("failed to read %s version: %w", check.Table, err)
	}

	var current int64
	if err := row.Column(0, &current); err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}
	if current != check.Expected {
		return fmt.Errorf("%w: %s %v expected version %d, found %d", ErrVersionConflict, check.Table, check.Key, check.Expected, current)
	}
	return nil
}

// Translate replaces ErrVersionConflict and ErrRowNotFound in err with the caller's errors
// and wraps anything else as a commit failure.
func Translate(err, conflict, missing error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionConflict):
		return fmt.Errorf("%w: %v", conflict, err)
	case errors.Is(err, ErrRowNotFound):
		return fmt.Errorf("%w: %v", missing, err)
	default:
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
}
