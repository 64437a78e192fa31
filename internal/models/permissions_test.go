package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRolePermissions(t *testing.T) {
	require.ElementsMatch(t, AllPermissions, RolePermissions(RoleAdmin))

	manager := RolePermissions(RoleManager)
	require.True(t, HasPermission(manager, PermEditBudgets))
	require.False(t, HasPermission(manager, PermManageTeam))
	require.False(t, HasPermission(manager, PermManageCompanies))

	member := RolePermissions(RoleMember)
	require.True(t, HasPermission(member, PermEditExpenses))
	require.False(t, HasPermission(member, PermDeleteExpenses))

	viewer := RolePermissions(RoleViewer)
	require.True(t, HasPermission(viewer, PermViewGoals))
	require.False(t, HasPermission(viewer, PermEditGoals))

	require.Nil(t, RolePermissions("owner"))
}

func TestRolePermissions_MemberDoesNotAliasViewer(t *testing.T) {
	_ = RolePermissions(RoleMember)
	require.False(t, HasPermission(RolePermissions(RoleViewer), PermEditExpenses))
}

func TestTeamMember_Effective(t *testing.T) {
	m := TeamMember{Role: RoleViewer}
	require.Equal(t, RolePermissions(RoleViewer), m.Effective())

	m.Permissions = []string{PermEditGoals}
	require.Equal(t, []string{PermEditGoals}, m.Effective())
}

func TestIsPermission(t *testing.T) {
	require.True(t, IsPermission("view_expenses"))
	require.False(t, IsPermission("drop_tables"))
}
