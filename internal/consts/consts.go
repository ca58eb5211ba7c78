package consts

// Component names for the container registry.
const (
	COMP_DAO_SLOT    = "dao_plan_slot"
	COMP_DAO_TASK    = "dao_task"
	COMP_DAO_TIMELOG = "dao_time_log"
	COMP_DAO_USER    = "dao_user"
	COMP_DAO_DEPT    = "dao_department"

	COMP_SVC_SLOT    = "svc_slot"
	COMP_SVC_ETA     = "svc_eta"
	COMP_SVC_PRIVACY = "svc_privacy"
	COMP_SVC_TIMELOG = "svc_time_log"

	COMP_CTRL_SLOT    = "ctrl_slot"
	COMP_CTRL_TASK    = "ctrl_task"
	COMP_CTRL_TIMELOG = "ctrl_time_log"
)

// Role is the access level attached to a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)
