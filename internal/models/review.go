package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is embedded in its recipe's reviews column.
type Review struct {
	UserID    uuid.UUID `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidRating reports whether rating is an integer star count in range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// Reviews holds at most one review per account, in submission order.
type Reviews []Review

func (r Reviews) Value() (driver.Value, error) {
	return jsonValue(r, len(r) == 0)
}

func (r *Reviews) Scan(value any) error {
	*r = Reviews{}
	return scanJSON(value, r)
}

func (r Reviews) indexOf(userID uuid.UUID) int {
	for i := range r {
		if r[i].UserID == userID {
			return i
		}
	}
	return -1
}

// ByUser returns the review left by userID, if any.
func (r Reviews) ByUser(userID uuid.UUID) (Review, bool) {
	if i := r.indexOf(userID); i >= 0 {
		return r[i], true
	}
	return Review{}, false
}

// Upsert overwrites the rating and comment of an existing review in place,
// keeping its position and creation time, or appends a new one.
func (r Reviews) Upsert(userID uuid.UUID, rating int, comment string, now time.Time) Reviews {
	if i := r.indexOf(userID); i >= 0 {
		r[i].Rating = rating
		r[i].Comment = comment
		return r
	}
	return append(r, Review{
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	})
}

// Remove drops the review left by userID. Removing an absent review leaves
// the collection untouched and reports false.
func (r Reviews) Remove(userID uuid.UUID) (Reviews, bool) {
	i := r.indexOf(userID)
	if i < 0 {
		return r, false
	}
	out := make(Reviews, 0, len(r)-1)
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...), true
}

// Average is the arithmetic mean of all ratings, or 0 for no reviews.
// It is not rounded.
func (r Reviews) Average() float64 {
	if len(r) == 0 {
		return 0
	}
	sum := 0
	for _, review := range r {
		sum += review.Rating
	}
	return float64(sum) / float64(len(r))
}

// UpsertReview applies a review submission and refreshes the cached average.
func (rc *Recipe) UpsertReview(userID uuid.UUID, rating int, comment string, now time.Time) {
	rc.Reviews = rc.Reviews.Upsert(userID, rating, comment, now)
	rc.RecalculateAverageRating()
}

// RemoveReview deletes the caller's review, if present, and refreshes the
// cached average either way.
func (rc *Recipe) RemoveReview(userID uuid.UUID) bool {
	var removed bool
	rc.Reviews, removed = rc.Reviews.Remove(userID)
	rc.RecalculateAverageRating()
	return removed
}

func (rc *Recipe) RecalculateAverageRating() {
	rc.AverageRating = rc.Reviews.Average()
}
