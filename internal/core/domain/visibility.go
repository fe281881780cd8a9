package domain

// VisibilityScope is the computed set of record owners a caller is entitled
// to see. It is derived from the role hierarchy at query time and never
// stored.
type VisibilityScope struct {
	// Unrestricted is set for top-level roles; OwnerIDs is ignored when true.
	Unrestricted bool
	// OwnerIDs holds the caller plus, for managerial roles, every user whose
	// current manager chain includes the caller.
	OwnerIDs []string
}

// ScopeAll returns the unrestricted scope used for top-level roles.
func ScopeAll() VisibilityScope {
	return VisibilityScope{Unrestricted: true}
}

// ScopeOwners returns a scope limited to the given owner IDs.
func ScopeOwners(ownerIDs ...string) VisibilityScope {
	return VisibilityScope{OwnerIDs: ownerIDs}
}

// Contains reports whether records owned by ownerID fall inside the scope.
func (s VisibilityScope) Contains(ownerID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.OwnerIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}
