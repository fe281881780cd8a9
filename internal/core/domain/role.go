package domain

// Role identifies a position in the sales-force hierarchy. The set of roles
// and their relative ranks is static configuration; changing it requires a
// redeployment.
type Role string

const (
	RoleMedicalRep      Role = "MEDICAL_REP"
	RoleDistrictManager Role = "DISTRICT_MANAGER"
	RoleAreaManager     Role = "AREA_MANAGER"
	RoleLineManager     Role = "LINE_MANAGER"
	RoleGeneralManager  Role = "GENERAL_MANAGER"
	RoleAdmin           Role = "ADMIN"
)

// roleRanks orders the hierarchy. A higher value means more authority.
var roleRanks = map[Role]int{
	RoleMedicalRep:      1,
	RoleDistrictManager: 2,
	RoleAreaManager:     3,
	RoleLineManager:     4,
	RoleGeneralManager:  5,
	RoleAdmin:           6,
}

// Rank returns the numeric rank of a role, or 0 for an unknown role.
func (r Role) Rank() int {
	return roleRanks[r]
}

// IsValid reports whether the role is one of the configured hierarchy roles.
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// IsTopLevel reports whether the role bypasses chain checks entirely.
// Top-level roles see every record and may decide any pending record.
func (r Role) IsTopLevel() bool {
	return r == RoleAdmin || r == RoleGeneralManager
}

// IsManagerial reports whether the role manages other users. Top-level roles
// are managerial by definition.
func (r Role) IsManagerial() bool {
	return r.Rank() > roleRanks[RoleMedicalRep]
}

// CanManage reports whether role a may manage role b: a must rank strictly
// above b, or be a top-level role.
func (a Role) CanManage(b Role) bool {
	if a.IsTopLevel() {
		return true
	}
	return a.Rank() > b.Rank()
}

// AllRoles returns every configured role, ordered by ascending rank.
func AllRoles() []Role {
	return []Role{
		RoleMedicalRep,
		RoleDistrictManager,
		RoleAreaManager,
		RoleLineManager,
		RoleGeneralManager,
		RoleAdmin,
	}
}
