package domain

// Scope is the visible slice of the roster for one caller. It is derived
// from the caller's token on every request and never cached: both the
// roster and the caller's assignment may change between calls.
//
// Admins see everything. Staff see exactly the voters whose voting area
// matches their assignment (case-sensitive). Staff without an assignment
// see nothing — a missing assignment must never widen visibility.
type Scope struct {
	Role         Role
	AssignedArea string
}

// AdminScope returns an unrestricted scope.
func AdminScope() Scope {
	return Scope{Role: RoleAdmin}
}

// StaffScope returns a scope limited to one voting area.
func StaffScope(area string) Scope {
	return Scope{Role: RoleStaff, AssignedArea: area}
}

// Unrestricted reports whether the scope covers the whole roster.
func (s Scope) Unrestricted() bool {
	return s.Role == RoleAdmin
}

// Empty reports whether the scope can never match any voter.
func (s Scope) Empty() bool {
	return s.Role != RoleAdmin && s.AssignedArea == ""
}

// Allows reports whether a voter is visible within the scope.
func (s Scope) Allows(v *Voter) bool {
	if s.Unrestricted() {
		return true
	}
	if s.AssignedArea == "" {
		return false
	}
	return v.VotingArea == s.AssignedArea
}

// Filter returns the visible subset of voters, preserving order.
func (s Scope) Filter(voters []*Voter) []*Voter {
	if s.Unrestricted() {
		return voters
	}
	visible := make([]*Voter, 0, len(voters))
	for _, v := range voters {
		if s.Allows(v) {
			visible = append(visible, v)
		}
	}
	return visible
}
