// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import "github.com/taibuivan/folio/internal/users/auth"

// RewardTerms are the inputs of a payout, captured at completion time.
type RewardTerms struct {
	BaseMoney     int64
	BasePoints    int64
	Plan          auth.Plan
	UserLevel     int
	RequiredLevel int
}

// RewardOutcome is the payout for one completed session.
type RewardOutcome struct {
	EarnedMoney  int64 `json:"earned_money"`
	EarnedPoints int64 `json:"earned_points"`
}

// Multiplier returns the money multiplier for plan. Unknown plans pay as free.
func Multiplier(plan auth.Plan) int64 {
	if plan == auth.PlanPremium {
		return 3
	}
	return 1
}

// ComputeReward derives the payout. The plan scales money only; points are
// paid as listed on the book.
func ComputeReward(terms RewardTerms) (RewardOutcome, error) {
	if terms.UserLevel < terms.RequiredLevel {
		return RewardOutcome{}, ErrInsufficientLevel
	}

	return RewardOutcome{
		EarnedMoney:  terms.BaseMoney * Multiplier(terms.Plan),
		EarnedPoints: terms.BasePoints,
	}, nil
}
