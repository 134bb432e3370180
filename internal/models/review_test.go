package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewAggregationScenario(t *testing.T) {
	recipe := &Recipe{}
	a, b := uuid.New(), uuid.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, 0.0, recipe.AverageRating)

	recipe.UpsertReview(a, 4, "", now)
	assert.Equal(t, 4.0, recipe.AverageRating)
	assert.Len(t, recipe.Reviews, 1)

	recipe.UpsertReview(b, 2, "", now.Add(time.Minute))
	assert.Equal(t, 3.0, recipe.AverageRating)
	assert.Len(t, recipe.Reviews, 2)

	recipe.UpsertReview(a, 5, "better the second time", now.Add(time.Hour))
	assert.Equal(t, 3.5, recipe.AverageRating)
	require.Len(t, recipe.Reviews, 2)
	assert.Equal(t, a, recipe.Reviews[0].UserID, "overwrite keeps position")
	assert.Equal(t, now, recipe.Reviews[0].CreatedAt, "overwrite keeps creation time")
	assert.Equal(t, "better the second time", recipe.Reviews[0].Comment)

	removed := recipe.RemoveReview(a)
	assert.True(t, removed)
	assert.Equal(t, 2.0, recipe.AverageRating)
	require.Len(t, recipe.Reviews, 1)
	assert.Equal(t, b, recipe.Reviews[0].UserID)
}

func TestUpsertIsIdempotent(t *testing.T) {
	recipe := &Recipe{}
	a, b := uuid.New(), uuid.New()
	now := time.Now()
	recipe.UpsertReview(a, 3, "ok", now)
	recipe.UpsertReview(b, 4, "", now)

	recipe.UpsertReview(a, 3, "ok", now.Add(time.Second))
	recipe.UpsertReview(a, 3, "ok", now.Add(2*time.Second))

	assert.Len(t, recipe.Reviews, 2)
	assert.Equal(t, 3.5, recipe.AverageRating)
}

func TestRemoveMissingReviewIsNoop(t *testing.T) {
	recipe := &Recipe{}
	a := uuid.New()
	recipe.UpsertReview(a, 5, "", time.Now())

	removed := recipe.RemoveReview(uuid.New())
	assert.False(t, removed)
	assert.Len(t, recipe.Reviews, 1)
	assert.Equal(t, 5.0, recipe.AverageRating)

	empty := &Recipe{}
	assert.False(t, empty.RemoveReview(a))
	assert.Empty(t, empty.Reviews)
	assert.Equal(t, 0.0, empty.AverageRating)
}

func TestAverageIsNotRounded(t *testing.T) {
	reviews := Reviews{{Rating: 5}, {Rating: 4}, {Rating: 4}}
	assert.InDelta(t, 13.0/3.0, reviews.Average(), 1e-12)
	assert.Equal(t, 0.0, Reviews(nil).Average())
}

func TestAverageMatchesMeanAfterMixedMutations(t *testing.T) {
	recipe := &Recipe{}
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	ops := []struct {
		user   int
		rating int
		remove bool
	}{
		{0, 1, false}, {1, 5, false}, {2, 3, false}, {1, 2, false},
		{0, 0, true}, {3, 4, false}, {2, 0, true}, {2, 0, true}, {0, 5, false},
	}
	for _, op := range ops {
		if op.remove {
			recipe.RemoveReview(users[op.user])
		} else {
			recipe.UpsertReview(users[op.user], op.rating, "", time.Now())
		}

		sum := 0
		seen := map[uuid.UUID]bool{}
		for _, r := range recipe.Reviews {
			sum += r.Rating
			assert.False(t, seen[r.UserID], "one review per account")
			seen[r.UserID] = true
		}
		if len(recipe.Reviews) == 0 {
			assert.Equal(t, 0.0, recipe.AverageRating)
		} else {
			assert.InDelta(t, float64(sum)/float64(len(recipe.Reviews)), recipe.AverageRating, 1e-12)
		}
	}
}

func TestValidRating(t *testing.T) {
	for _, r := range []int{1, 2, 3, 4, 5} {
		assert.True(t, ValidRating(r))
	}
	for _, r := range []int{-1, 0, 6, 100} {
		assert.False(t, ValidRating(r))
	}
}

func TestByUser(t *testing.T) {
	a := uuid.New()
	reviews := Reviews{}.Upsert(a, 2, "meh", time.Now())

	got, ok := reviews.ByUser(a)
	assert.True(t, ok)
	assert.Equal(t, 2, got.Rating)

	_, ok = reviews.ByUser(uuid.New())
	assert.False(t, ok)
}
