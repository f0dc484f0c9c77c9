// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table           string
	ID              string
	Title           string
	Slug            string
	Author          string
	Content         string
	BaseRewardMoney string
	RewardPoints    string
	RequiredLevel   string
	IsInitialBook   string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:           "catalog.book",
	ID:              "id",
	Title:           "title",
	Slug:            "slug",
	Author:          "author",
	Content:         "content",
	BaseRewardMoney: "baserewardmoney",
	RewardPoints:    "rewardpoints",
	RequiredLevel:   "requiredlevel",
	IsInitialBook:   "isinitialbook",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// SummaryColumns omits the content column for list views.
func (t CatalogBookTable) SummaryColumns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Author, t.BaseRewardMoney, t.RewardPoints,
		t.RequiredLevel, t.IsInitialBook, t.CreatedAt, t.UpdatedAt,
	}
}
