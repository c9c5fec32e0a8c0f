// Package authz resolves role-based permissions. The role→capability table is
// static load-time configuration; changing it means redeploying, never a
// runtime write.
package authz

import "wooltrace/internal/domain"

// rolePermissions maps each role to its ordered capability set. Admin carries
// an explicit entry for snapshot materialization but is short-circuited in
// Authorize regardless of table contents.
var rolePermissions = map[domain.Role][]domain.Capability{
	domain.RoleFarmer: {
		domain.CapCreateBatch,
		domain.CapSellWool,
		domain.CapViewQualityResults,
	},
	domain.RoleMillOperator: {
		domain.CapCreateBatch,
		domain.CapUpdateBatchStage,
		domain.CapAddProcessingLogs,
		domain.CapAccessMonitoring,
	},
	domain.RoleQualityInspector: {
		domain.CapCreateQualityInspection,
		domain.CapApproveBatch,
		domain.CapRejectBatch,
		domain.CapViewQualityAnalytics,
		domain.CapViewQualityLogs,
	},
	domain.RoleBuyer: {
		domain.CapViewMarketplace,
		domain.CapViewProducts,
		domain.CapBuyWool,
		domain.CapViewOrderHistory,
	},
	domain.RoleAdmin: {
		domain.CapManageUsers,
	},
}

// Authorize reports whether the role may perform an action gated by any of
// the given capabilities (OR semantics). Admin always passes. An unknown role
// has an empty capability set and is denied.
func Authorize(role domain.Role, caps ...domain.Capability) bool {
	if role == domain.RoleAdmin {
		return true
	}
	granted := rolePermissions[role]
	for _, want := range caps {
		for _, have := range granted {
			if have == want {
				return true
			}
		}
	}
	return false
}

// PermissionsFor returns a copy of the role's configured capability set, used
// to materialize a user's permission snapshot at registration or role change.
// Unknown roles yield an empty set.
func PermissionsFor(role domain.Role) []domain.Capability {
	granted := rolePermissions[role]
	out := make([]domain.Capability, len(granted))
	copy(out, granted)
	return out
}
