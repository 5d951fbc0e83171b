package commands

import "github.com/mcdev12/matchclock/go/internal/models"

// CanAdjust reports whether a caller may change the timer under the given
// admin level. Level 0 lets everyone in, 1 needs operator, 2 admin, 3 master
// admin, and 4 turns the commands off for everybody.
func CanAdjust(adminLevel int, p models.Privilege) bool {
	if adminLevel >= 4 {
		return false
	}
	return int(p) >= adminLevel
}

// CanManageWhitelist reports whether a caller may use /whitelist. Level 1
// allows master admins, level 2 also admins; operators never qualify.
func CanManageWhitelist(level int, p models.Privilege) bool {
	switch p {
	case models.PrivilegeMasterAdmin:
		return level >= 1
	case models.PrivilegeAdmin:
		return level == 2
	default:
		return false
	}
}
