// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the catalogue of readable works.

A [Book] is immutable once published. Its text is never served whole: readers
receive [Page] values derived by [Paginate], which must be deterministic so a
reading session's page index stays valid across reloads.
*/
package book

import "time"

// # Domain Entities

// Book is a short literary work with a completion reward.
type Book struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Author  string `json:"author"`
	Content string `json:"-"`

	// BaseRewardMoney is in minor currency units.
	BaseRewardMoney int64 `json:"base_reward_money"`
	RewardPoints    int64 `json:"reward_points"`
	RequiredLevel   int   `json:"required_level"`

	// IsInitialBook marks works offered to new accounts.
	IsInitialBook bool `json:"is_initial_book"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is a 0-indexed slice of a book's content. Derived, never persisted.
type Page struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Filter narrows catalogue listings.
type Filter struct {
	InitialOnly bool
}

// # Field Identifiers

const (
	FieldTitle           = "title"
	FieldAuthor          = "author"
	FieldContent         = "content"
	FieldBaseRewardMoney = "base_reward_money"
	FieldRewardPoints    = "reward_points"
	FieldRequiredLevel   = "required_level"
)
