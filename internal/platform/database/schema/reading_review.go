// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReadingReviewTable represents the 'reading.review' table
type ReadingReviewTable struct {
	Table          string
	ID             string
	SessionID      string
	UserID         string
	BookID         string
	Rating         string
	Comment        string
	DonationAmount string
	CreatedAt      string
}

// ReadingReview is the schema definition for reading.review
var ReadingReview = ReadingReviewTable{
	Table:          "reading.review",
	ID:             "id",
	SessionID:      "sessionid",
	UserID:         "userid",
	BookID:         "bookid",
	Rating:         "rating",
	Comment:        "comment",
	DonationAmount: "donationamount",
	CreatedAt:      "createdat",
}
