package domain

// Discord permission bits consumed by the permission-inspection button and
// the moderator-only command checks.
const (
	PermKickMembers    int64 = 1 << 1
	PermBanMembers     int64 = 1 << 2
	PermAdministrator  int64 = 1 << 3
	PermManageChannels int64 = 1 << 4
	PermManageGuild    int64 = 1 << 5
	PermManageMessages int64 = 1 << 13
	PermManageRoles    int64 = 1 << 28
)

// PermissionNames maps the inspected bits to display names, in a stable
// order.
var PermissionNames = []struct {
	Bit  int64
	Name string
}{
	{PermAdministrator, "Administrator"},
	{PermManageGuild, "Manage Server"},
	{PermManageRoles, "Manage Roles"},
	{PermManageChannels, "Manage Channels"},
	{PermManageMessages, "Manage Messages"},
	{PermBanMembers, "Ban Members"},
	{PermKickMembers, "Kick Members"},
}

// CanManageGuild reports whether the permission set allows configuring the
// verification system.
func CanManageGuild(permissions int64) bool {
	return permissions&(PermAdministrator|PermManageGuild) != 0
}
