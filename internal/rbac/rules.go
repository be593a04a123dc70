package rbac

const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

const (
	PermPredict       = "predict:use"
	PermRecordsList   = "records:list"
	PermRecordsImport = "records:import"
	PermUsersRole     = "users:role"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	RoleStudent: {
		PermPredict,
	},
	RoleCounselor: {
		PermPredict,
		"records:*",
	},
	RoleAdmin: {
		"*",
	},
}
