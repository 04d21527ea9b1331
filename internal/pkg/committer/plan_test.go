package committer

import (
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty())

	plan.Add(spanner.Delete("rates", spanner.Key{"rate-1"}))
	plan.AddMultiple([]*spanner.Mutation{
		spanner.Delete("rate_modifiers", spanner.Key{"rate-1", "mod-1"}),
		nil,
	})
	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}

func TestRateVersion(t *testing.T) {
	check := RateVersion("rate-1", 3)
	assert.Equal(t, "rates", check.Table)
	assert.Equal(t, spanner.Key{"rate-1"}, check.Key)
	assert.Equal(t, "version", check.Column)
	assert.Equal(t, int64(3), check.Expected)
}

func TestTranslate(t *testing.T) {
	conflict := errors.New("conflict")
	missing := errors.New("missing")

	assert.NoError(t, Translate(nil, conflict, missing))

	err := Translate(fmt.Errorf("%w: rates", ErrVersionConflict), conflict, missing)
	assert.ErrorIs(t, err, conflict)
	assert.NotErrorIs(t, err, ErrVersionConflict)

	err = Translate(fmt.Errorf("%w: rates", ErrRowNotFound), conflict, missing)
	assert.ErrorIs(t, err, missing)

	boom := errors.New("aborted")
	err = Translate(boom, conflict, missing)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to commit transaction")
}
