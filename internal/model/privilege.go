package model

// Role codes
const (
	RoleManager = "manager"
	RoleSeller  = "seller"
)

// Privilege codes checked by the HTTP layer
const (
	PrivProductView   = "product:view"
	PrivProductManage = "product:manage"
	PrivStockReceive  = "stock:receive"
	PrivStockView     = "stock:view"
	PrivSaleCreate    = "sale:create"
	PrivSaleView      = "sale:view"
	PrivCartUse       = "cart:use"
	PrivReportView    = "report:view"
	PrivConfigUpdate  = "config:update"
	PrivUserManage    = "user:manage"
	PrivBackupManage  = "backup:manage"
)

// rolePrivileges: the manager sees every screen, the seller only the cash desk.
var rolePrivileges = map[string][]string{
	RoleManager: {
		PrivProductView, PrivProductManage,
		PrivStockReceive, PrivStockView,
		PrivSaleCreate, PrivSaleView, PrivCartUse,
		PrivReportView, PrivConfigUpdate,
		PrivUserManage, PrivBackupManage,
	},
	RoleSeller: {
		PrivProductView, PrivSaleCreate, PrivCartUse,
	},
}

// ValidRole reports whether role is a known role code.
func ValidRole(role string) bool {
	_, ok := rolePrivileges[role]
	return ok
}

// PrivilegesFor returns a copy of the privilege codes granted to role.
func PrivilegesFor(role string) []string {
	codes := rolePrivileges[role]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// RoleHasPrivilege checks a single privilege for role.
func RoleHasPrivilege(role, code string) bool {
	for _, p := range rolePrivileges[role] {
		if p == code {
			return true
		}
	}
	return false
}
