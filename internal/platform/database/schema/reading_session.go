// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReadingSessionTable represents the 'reading.session' table
type ReadingSessionTable struct {
	Table             string
	ID                string
	UserID            string
	BookID            string
	PageCount         string
	PageSize          string
	PaginationVersion string
	DwellSeconds      string
	CurrentPage       string
	ReadPages         string
	DwellStart        string
	Status            string
	Version           string
	EarnedMoney       string
	EarnedPoints      string
	CompletedAt       string
	CreatedAt         string
	UpdatedAt         string
}

// ReadingSession is the schema definition for reading.session
var ReadingSession = ReadingSessionTable{
	Table:             "reading.session",
	ID:                "id",
	UserID:            "userid",
	BookID:            "bookid",
	PageCount:         "pagecount",
	PageSize:          "pagesize",
	PaginationVersion: "paginationversion",
	DwellSeconds:      "dwellseconds",
	CurrentPage:       "currentpage",
	ReadPages:         "readpages",
	DwellStart:        "dwellstart",
	Status:            "status",
	Version:           "version",
	EarnedMoney:       "earnedmoney",
	EarnedPoints:      "earnedpoints",
	CompletedAt:       "completedat",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all column names in scan order.
func (t ReadingSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.PageCount, t.PageSize, t.PaginationVersion,
		t.DwellSeconds, t.CurrentPage, t.ReadPages, t.DwellStart, t.Status,
		t.Version, t.EarnedMoney, t.EarnedPoints, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	}
}
