// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// FinanceRewardTransactionTable represents the 'finance.rewardtransaction' ledger.
// One row per completed session; sessionid is unique.
type FinanceRewardTransactionTable struct {
	Table        string
	ID           string
	SessionID    string
	UserID       string
	MoneyDelta   string
	PointsDelta  string
	DonatedMoney string
	CreatedAt    string
}

// FinanceRewardTransaction is the schema definition for finance.rewardtransaction
var FinanceRewardTransaction = FinanceRewardTransactionTable{
	Table:        "finance.rewardtransaction",
	ID:           "id",
	SessionID:    "sessionid",
	UserID:       "userid",
	MoneyDelta:   "moneydelta",
	PointsDelta:  "pointsdelta",
	DonatedMoney: "donatedmoney",
	CreatedAt:    "createdat",
}
