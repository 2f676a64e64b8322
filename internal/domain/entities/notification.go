package entities

import "time"

// RecipientScope discriminates the notification target variants
type RecipientScope string

const (
	// ScopeEveryone targets all users
	ScopeEveryone RecipientScope = "all"
	// ScopeRole targets everyone holding a role (or the Staff group)
	ScopeRole RecipientScope = "role"
	// ScopeUser targets a single user by id
	ScopeUser RecipientScope = "user"
)

// TargetRole is the role a role-scoped notification addresses. Unlike Role
// it includes the Staff group, which covers doctors and nurses together.
type TargetRole string

const (
	TargetStudents TargetRole = "Student"
	TargetDoctors  TargetRole = "Doctor"
	TargetNurses   TargetRole = "Nurse"
	TargetAdmins   TargetRole = "Admin"
	TargetStaff    TargetRole = "Staff"
)

// Recipient is a tagged union over notification targets. Exactly one
// variant applies: everyone, a role (or the Staff group), or one user.
type Recipient struct {
	Scope  RecipientScope `json:"scope" db:"recipient_scope"`
	Role   TargetRole     `json:"role,omitempty" db:"recipient_role"`
	UserID string         `json:"user_id,omitempty" db:"recipient_user_id"`
}

// Everyone targets all users
func Everyone() Recipient {
	return Recipient{Scope: ScopeEveryone}
}

// ForRole targets every holder of the given role or group
func ForRole(role TargetRole) Recipient {
	return Recipient{Scope: ScopeRole, Role: role}
}

// ForUser targets a single user
func ForUser(userID string) Recipient {
	return Recipient{Scope: ScopeUser, UserID: userID}
}

// Matches reports whether a user with the given id and role should see a
// notification addressed to this recipient.
func (r Recipient) Matches(userID string, role Role) bool {
	switch r.Scope {
	case ScopeEveryone:
		return true
	case ScopeRole:
		if r.Role == TargetStaff {
			return role.IsStaff()
		}
		return string(r.Role) == string(role)
	case ScopeUser:
		return r.UserID == userID
	}
	return false
}

// Notification is an in-app message shown on a user's dashboard
type Notification struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Recipient Recipient `json:"recipient"`
	SendTime  time.Time `json:"send_time" db:"send_time"`
	Read      bool      `json:"read" db:"read"`
}

// Broadcast is an admin announcement visible to everyone
type Broadcast struct {
	ID       string    `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Content  string    `json:"content" db:"content"`
	PostDate time.Time `json:"post_date" db:"post_date"`
}
