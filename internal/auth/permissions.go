package auth

import "hiremind_backend/internal/models"

const (
	PermUsersRead    = "users:read"
	PermUsersWrite   = "users:write"
	PermJobsWrite    = "jobs:write:self"
	PermBillingWrite = "billing:write:self"
)

// Permissions - разрешения по ролям
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		PermUsersRead,
		PermUsersWrite,
		PermJobsWrite,
		PermBillingWrite,
	},
	models.UserRoleRecruiter: {
		PermJobsWrite,
		PermBillingWrite,
	},
}

// HasPermission проверяет, есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
