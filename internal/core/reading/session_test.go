// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/reading"
	"github.com/taibuivan/folio/internal/users/auth"
)

const dwell = 120 * time.Second

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func freeTerms() reading.RewardTerms {
	return reading.RewardTerms{BaseMoney: 10000, BasePoints: 500, Plan: auth.PlanFree, UserLevel: 1, RequiredLevel: 1}
}

func TestNewSession(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 3, 3000, dwell, start)

	assert.Equal(t, 0, session.CurrentPage)
	assert.Equal(t, []int{0}, session.ReadPages)
	assert.Equal(t, reading.StatusActive, session.Status)
	assert.Equal(t, book.PaginationVersion, session.PaginationVersion)
	assert.Equal(t, dwell, session.Remaining(start))
}

func TestSession_DwellBoundary(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 3, 3000, dwell, start)

	t.Run("just_before", func(t *testing.T) {
		now := start.Add(dwell - time.Millisecond)
		assert.Equal(t, time.Millisecond, session.Remaining(now))
		assert.ErrorIs(t, session.Advance(now), reading.ErrNotYetEligible)
		assert.Equal(t, 0, session.CurrentPage)
	})

	t.Run("exactly_at", func(t *testing.T) {
		now := start.Add(dwell)
		assert.True(t, session.CanAdvance(now))
		require.NoError(t, session.Advance(now))
		assert.Equal(t, 1, session.CurrentPage)
		assert.Equal(t, now, session.DwellStart)
		assert.Equal(t, []int{0, 1}, session.ReadPages)
	})
}

func TestSession_ClockSkew(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 2, 3000, dwell, start)

	// A clock behind the stored timestamp counts as no time elapsed.
	assert.Equal(t, dwell, session.Remaining(start.Add(-time.Hour)))
}

func TestSession_Bounds(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 2, 3000, dwell, start)

	assert.ErrorIs(t, session.Retreat(start), reading.ErrAtFirstPage)

	now := start.Add(dwell)
	require.NoError(t, session.Advance(now))
	assert.ErrorIs(t, session.Advance(now.Add(time.Hour)), reading.ErrAtLastPage)
}

func TestSession_RetreatWaivesDwell(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 3, 3000, dwell, start)

	now := start.Add(dwell)
	require.NoError(t, session.Advance(now))
	require.NoError(t, session.Retreat(now.Add(time.Second)))
	assert.Equal(t, 0, session.CurrentPage)

	// Page 1 is already read, so moving forward again is immediate.
	assert.Zero(t, session.Remaining(now.Add(time.Second)))
	require.NoError(t, session.Advance(now.Add(2*time.Second)))
	assert.Equal(t, 1, session.CurrentPage)

	// Page 2 is new: the wait applies again.
	assert.ErrorIs(t, session.Advance(now.Add(3*time.Second)), reading.ErrNotYetEligible)
}

func TestSession_Complete(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 2, 3000, dwell, start)

	_, err := session.Complete(start, freeTerms())
	assert.ErrorIs(t, err, reading.ErrIncomplete)
	assert.Equal(t, reading.StatusActive, session.Status)

	now := start.Add(dwell)
	require.NoError(t, session.Advance(now))
	assert.True(t, session.IsComplete())

	// The last page has no dwell requirement before completing.
	outcome, err := session.Complete(now, freeTerms())
	require.NoError(t, err)
	assert.Equal(t, reading.RewardOutcome{EarnedMoney: 10000, EarnedPoints: 500}, outcome)
	assert.Equal(t, reading.StatusCompleted, session.Status)
	require.NotNil(t, session.CompletedAt)
	assert.Equal(t, now, *session.CompletedAt)

	_, err = session.Complete(now, freeTerms())
	assert.ErrorIs(t, err, reading.ErrAlreadyCompleted)
	assert.ErrorIs(t, session.Advance(now), reading.ErrAlreadyCompleted)
	assert.ErrorIs(t, session.Retreat(now), reading.ErrAlreadyCompleted)
	assert.Zero(t, session.Remaining(now))
}

func TestSession_SinglePageBook(t *testing.T) {
	session := reading.NewSession("s1", "u1", "b1", 1, 3000, dwell, start)

	assert.True(t, session.IsComplete())
	assert.ErrorIs(t, session.Advance(start.Add(dwell)), reading.ErrAtLastPage)

	_, err := session.Complete(start, freeTerms())
	assert.NoError(t, err)
}
