package models

import "strings"

// Privilege is the caller classification supplied by the host.
type Privilege int

const (
	PrivilegeNone Privilege = iota
	PrivilegeOperator
	PrivilegeAdmin
	PrivilegeMasterAdmin
)

// String returns the lower-case wire name of the privilege.
func (p Privilege) String() string {
	switch p {
	case PrivilegeOperator:
		return "operator"
	case PrivilegeAdmin:
		return "admin"
	case PrivilegeMasterAdmin:
		return "masteradmin"
	default:
		return "none"
	}
}

// ParsePrivilege maps a wire name onto a Privilege. Unknown names map to
// PrivilegeNone.
func ParsePrivilege(s string) Privilege {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "operator", "op":
		return PrivilegeOperator
	case "admin":
		return PrivilegeAdmin
	case "masteradmin", "master_admin", "master-admin":
		return PrivilegeMasterAdmin
	default:
		return PrivilegeNone
	}
}

// Caller identifies whoever issued a command.
type Caller struct {
	Login     string    `json:"login"`
	Nickname  string    `json:"nickname"`
	Privilege Privilege `json:"privilege"`
}

// DisplayName returns the nickname, falling back to the login.
func (c Caller) DisplayName() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.Login
}

// MarshalText encodes the privilege by name so host payloads stay readable.
func (p Privilege) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a privilege name.
func (p *Privilege) UnmarshalText(b []byte) error {
	*p = ParsePrivilege(string(b))
	return nil
}
