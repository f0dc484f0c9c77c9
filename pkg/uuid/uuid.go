// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifiers used for accounts, books and reading
sessions.

New values are Version 7 so primary keys stay roughly insertion-ordered in
PostgreSQL B-tree indexes.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string. Entropy failure is unrecoverable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether raw parses as a UUID of any version.
// Handlers use it to reject malformed path parameters before hitting storage.
func Valid(raw string) bool {
	return uuid.Validate(raw) == nil
}
