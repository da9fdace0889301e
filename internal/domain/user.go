package domain

// A user of the scheduling tool. Drivers own deliveries; schedulers and admins manage them.
// Users are maintained by the user-management layer and are read-only here.
type User struct {
	UserID int64
	Name   string
	Email  string
	Role   Role
}
