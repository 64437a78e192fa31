package models

const (
	PermViewCompanies   = "view_companies"
	PermManageCompanies = "manage_companies"
	PermViewExpenses    = "view_expenses"
	PermEditExpenses    = "edit_expenses"
	PermDeleteExpenses  = "delete_expenses"
	PermViewIncome      = "view_income"
	PermEditIncome      = "edit_income"
	PermViewDebts       = "view_debts"
	PermEditDebts       = "edit_debts"
	PermViewAssets      = "view_assets"
	PermEditAssets      = "edit_assets"
	PermViewBudgets     = "view_budgets"
	PermEditBudgets     = "edit_budgets"
	PermViewGoals       = "view_goals"
	PermEditGoals       = "edit_goals"
	PermViewReports     = "view_reports"
	PermManageTeam      = "manage_team"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
	RoleViewer  = "viewer"
)

var AllPermissions = []string{
	PermViewCompanies, PermManageCompanies,
	PermViewExpenses, PermEditExpenses, PermDeleteExpenses,
	PermViewIncome, PermEditIncome,
	PermViewDebts, PermEditDebts,
	PermViewAssets, PermEditAssets,
	PermViewBudgets, PermEditBudgets,
	PermViewGoals, PermEditGoals,
	PermViewReports, PermManageTeam,
}

var viewPermissions = []string{
	PermViewCompanies, PermViewExpenses, PermViewIncome, PermViewDebts,
	PermViewAssets, PermViewBudgets, PermViewGoals, PermViewReports,
}

// RolePermissions returns the default permission set of a role
func RolePermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return AllPermissions
	case RoleManager:
		perms := make([]string, 0, len(AllPermissions))
		for _, p := range AllPermissions {
			if p != PermManageTeam && p != PermManageCompanies {
				perms = append(perms, p)
			}
		}
		return perms
	case RoleMember:
		return append(append([]string{}, viewPermissions...), PermEditExpenses, PermEditIncome)
	case RoleViewer:
		return viewPermissions
	}
	return nil
}

func IsPermission(p string) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

func HasPermission(perms []string, p string) bool {
	for _, granted := range perms {
		if granted == p {
			return true
		}
	}
	return false
}
