package domain

import "time"

// Role is the access level of a user. Roles are ordered: every admin holds
// user privileges and every user holds visitor privileges.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
)

// roleRank gives the position of each role in the privilege ordering.
var roleRank = map[Role]int{
	RoleVisitor: 0,
	RoleUser:    1,
	RoleAdmin:   2,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants the privileges of required.
// Unknown roles never satisfy anything.
func (r Role) AtLeast(required Role) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	qr, ok := roleRank[required]
	if !ok {
		return false
	}
	return rr >= qr
}

// User represents an account in the users collection of the REST store.
// PasswordHash is serialized under "password" because that is the field the
// store already uses; values written by this service are bcrypt hashes.
type User struct {
	ID           string    `json:"id,omitempty"`
	CC           string    `json:"cc,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the authenticated-user record plus token held in the session
// store. A session exists only when both the user record and the token are
// present; absence of either means "logged out".
type Session struct {
	User         User      `json:"user"`
	Token        string    `json:"token"`
	LoginTime    time.Time `json:"loginTime"`
	LastActivity time.Time `json:"lastActivity"`
}

// Expired reports whether the session is older than window, measured from
// LoginTime.
func (s *Session) Expired(window time.Duration, now time.Time) bool {
	return now.Sub(s.LoginTime) > window
}

// HasRole reports whether the session's user holds at least the required
// role. A nil session holds nothing.
func (s *Session) HasRole(required Role) bool {
	if s == nil {
		return false
	}
	return s.User.Role.AtLeast(required)
}

// ReportTimes carries the lifecycle timestamps of a report. The process and
// finish fields are stamped on entry to the matching status and stay nil
// until then.
type ReportTimes struct {
	TimeCreateReport  time.Time  `json:"timeCreateReport"`
	TimeProcessReport *time.Time `json:"timeProcessReport,omitempty"`
	TimeFinishReport  *time.Time `json:"timeFinishReport,omitempty"`
}

// Report is the citizen-facing projection of a complaint.
type Report struct {
	ID           string      `json:"id"`
	CCUser       string      `json:"ccUser"`
	Address      string      `json:"address"`
	Description  string      `json:"description"`
	Barrio       string      `json:"barrio"`
	DamageType   string      `json:"damageType"`
	Priority     string      `json:"priority"`
	ContactPhone string      `json:"contactPhone,omitempty"`
	DataTime     ReportTimes `json:"dataTime"`
	Status       Status      `json:"status"`
}

// Damage is the geolocated map-facing projection of a report. It shares the
// report's ID and must carry the same status after any transition.
type Damage struct {
	ID          string  `json:"id"`
	CCUser      string  `json:"ccUser"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Status      Status  `json:"status"`
	DamageType  string  `json:"damageType"`
	Priority    string  `json:"priority"`
	Description string  `json:"description"`
}

// Barrio is a neighborhood used for address formatting and filtering.
type Barrio struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// ReportIntake is the citizen form submission.
type ReportIntake struct {
	Name         string
	CCUser       string
	Address      string
	Description  string
	Barrio       string
	DamageType   string
	Priority     string
	ContactPhone string
}

// TokenClaims represents the claims carried by a session token.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	TokenID   string `json:"jti"`
}
