package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wooltrace/internal/authz"
	"wooltrace/internal/domain"
)

var allCapabilities = []domain.Capability{
	domain.CapCreateBatch,
	domain.CapSellWool,
	domain.CapUpdateBatchStage,
	domain.CapAddProcessingLogs,
	domain.CapApproveBatch,
	domain.CapRejectBatch,
	domain.CapCreateQualityInspection,
	domain.CapViewQualityResults,
	domain.CapViewQualityAnalytics,
	domain.CapViewQualityLogs,
	domain.CapAccessMonitoring,
	domain.CapViewMarketplace,
	domain.CapViewProducts,
	domain.CapBuyWool,
	domain.CapViewOrderHistory,
	domain.CapManageUsers,
}

func TestAuthorize_AdminAlwaysAllowed(t *testing.T) {
	for _, cap := range allCapabilities {
		assert.True(t, authz.Authorize(domain.RoleAdmin, cap), "admin denied %s", cap)
	}
}

func TestAuthorize_MatchesPermissionSnapshot(t *testing.T) {
	roles := []domain.Role{
		domain.RoleFarmer,
		domain.RoleMillOperator,
		domain.RoleQualityInspector,
		domain.RoleBuyer,
	}

	for _, role := range roles {
		granted := map[domain.Capability]bool{}
		for _, cap := range authz.PermissionsFor(role) {
			granted[cap] = true
		}
		for _, cap := range allCapabilities {
			assert.Equal(t, granted[cap], authz.Authorize(role, cap),
				"role %s capability %s", role, cap)
		}
	}
}

func TestAuthorize_AnyOfSemantics(t *testing.T) {
	// Farmer lacks update_batch_stage but holds create_batch; either grants access.
	assert.True(t, authz.Authorize(domain.RoleFarmer, domain.CapUpdateBatchStage, domain.CapCreateBatch))
	assert.False(t, authz.Authorize(domain.RoleFarmer, domain.CapUpdateBatchStage, domain.CapManageUsers))
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	assert.False(t, authz.Authorize(domain.Role("INTERN"), domain.CapViewProducts))
	assert.Empty(t, authz.PermissionsFor(domain.Role("INTERN")))
}

func TestAuthorize_NoCapabilitiesRequested(t *testing.T) {
	assert.False(t, authz.Authorize(domain.RoleFarmer))
	assert.True(t, authz.Authorize(domain.RoleAdmin))
}

func TestPermissionsFor_ReturnsCopy(t *testing.T) {
	first := authz.PermissionsFor(domain.RoleBuyer)
	first[0] = domain.CapManageUsers

	second := authz.PermissionsFor(domain.RoleBuyer)
	assert.Equal(t, domain.CapViewMarketplace, second[0])
}
