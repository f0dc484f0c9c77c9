// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level carried in access tokens.
type UserRole string

const (
	RoleReader UserRole = "reader"

	// RoleAdmin publishes books and changes reader tiers.
	RoleAdmin UserRole = "admin"
)

// roleRank orders roles; a higher rank includes every lower one.
var roleRank = map[UserRole]int{
	RoleReader: 1,
	RoleAdmin:  2,
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants everything target does. Unknown roles
// grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	rank, ok := roleRank[r]
	return ok && rank >= roleRank[target]
}
