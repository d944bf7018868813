package rooms

// Role is a numeric authority rank. The ordering is inverted: a lower
// value carries more authority, with Owner=1 the strongest. All
// comparisons must go through outranks so the inversion stays in one
// place.
type Role int

const (
	RoleOwner Role = iota + 1
	RoleSuperAdmin
	RoleAdmin
	RolePowerUser
	RoleModerator
	RoleMember
)

var roleNames = map[Role]string{
	RoleOwner:      "Owner",
	RoleSuperAdmin: "SuperAdmin",
	RoleAdmin:      "Admin",
	RolePowerUser:  "PowerUser",
	RoleModerator:  "Moderator",
	RoleMember:     "Member",
}

var roleColors = map[Role]string{
	RoleOwner:      "#e6b400",
	RoleSuperAdmin: "#d64545",
	RoleAdmin:      "#e07b39",
	RolePowerUser:  "#7d5fff",
	RoleModerator:  "#3a9e5f",
	RoleMember:     "#6b7280",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (r Role) Color() string {
	return roleColors[r]
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return 0, newError(KindInvalidRole, "unknown role %q", name)
}

// outranks reports whether actor holds at least the authority of
// required. Lower rank value means more authority.
func outranks(actor, required Role) bool {
	return actor <= required
}

// HasPermission reports whether an actor of the given rank may perform
// an action requiring the given rank.
func HasPermission(actor, required Role) bool {
	return outranks(actor, required)
}

// assignable encodes the strict delegation rule for named elevated
// roles. It is intentionally narrower than the general rank comparison:
// no actor may hand out a rank equal to or above its own.
var assignable = map[Role][]Role{
	RoleOwner:      {RoleSuperAdmin, RoleAdmin, RoleModerator},
	RoleSuperAdmin: {RoleAdmin, RoleModerator},
	RoleAdmin:      {RoleModerator},
}

func CanAssign(actor, target Role) bool {
	for _, r := range assignable[actor] {
		if r == target {
			return true
		}
	}
	return false
}

// CanRemove mirrors CanAssign: an actor may strip only roles it could
// itself hand out.
func CanRemove(actor, target Role) bool {
	return CanAssign(actor, target)
}

// CanSee follows the same containment: an actor sees only the named
// roles it could assign.
func CanSee(actor, target Role) bool {
	return CanAssign(actor, target)
}
