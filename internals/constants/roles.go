package constants

// Role user sesuai kolom users.role
const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

var (
	AllRoles = []string{
		RoleStaff,
		RoleAdmin,
	}

	StaffOnly = []string{
		RoleStaff,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// Pesan error role
const (
	ErrOnlyStaffCanAccess = "Hanya staff yang boleh mengakses fitur ini."
	ErrOnlyAdminCanAccess = "Hanya admin yang boleh mengakses fitur ini."
)
