package accesscontrol

type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
)

// Caller is the identity resolved for the current request: the user id plus
// the set of roles granted to it. It is built once by the auth middleware and
// treated as read-only everywhere below.
type Caller struct {
	UserID int64
	Roles  map[RoleName]struct{}
}

func NewCaller(userID int64, roles ...RoleName) Caller {
	c := Caller{UserID: userID, Roles: make(map[RoleName]struct{}, len(roles))}
	for _, r := range roles {
		c.Roles[r] = struct{}{}
	}
	return c
}

func (c Caller) HasRole(role RoleName) bool {
	_, ok := c.Roles[role]
	return ok
}
