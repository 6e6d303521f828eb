package domain

import "context"

// SessionStore holds the authenticated-user record and token for each
// issued session. Implementations must treat the user entry and the token
// entry as a pair: Load fails with ErrSessionNotFound unless both are
// present and parseable.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, token string) (*Session, error)
	Touch(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
}

// TokenService issues and validates opaque session tokens.
type TokenService interface {
	Generate(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// UserRepository defines user data access against the REST store.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// ReportRepository maps between the report and damage projections sharing
// a common identifier. Update methods replace the full record (PUT);
// PatchDamageStatus changes only the status field (PATCH), which is the
// map view's update path.
type ReportRepository interface {
	CreateReport(ctx context.Context, report *Report) error
	CreateDamage(ctx context.Context, damage *Damage) error
	FindReport(ctx context.Context, id string) (*Report, error)
	FindDamage(ctx context.Context, id string) (*Damage, error)
	ListReports(ctx context.Context) ([]Report, error)
	ListReportsByCC(ctx context.Context, ccUser string) ([]Report, error)
	ListDamage(ctx context.Context) ([]Damage, error)
	UpdateReport(ctx context.Context, report *Report) error
	UpdateDamage(ctx context.Context, damage *Damage) error
	PatchDamageStatus(ctx context.Context, id string, status Status) (*Damage, error)
}

// BarrioRepository lists the neighborhoods used by the intake form.
type BarrioRepository interface {
	List(ctx context.Context) ([]Barrio, error)
}

// Geocoder resolves a formatted address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}

// NotificationService defines notification operations.
type NotificationService interface {
	SendSMS(to, message string) error
}

// PolicyService defines route authorization policy operations.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// AuthService defines authentication business logic. ValidateSession fails
// closed: an expired or server-side-invalidated session is cleared from the
// store before the error is returned, so stale credentials never survive an
// observation.
type AuthService interface {
	Register(ctx context.Context, name, cc, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	IsAuthenticated(ctx context.Context, token string) bool
	ValidateSession(ctx context.Context, token string) (*Session, error)
	HasRole(sess *Session, required Role) bool
	Logout(ctx context.Context, token string) error
}

// ReportService drives the report status state machine across the paired
// report/damage projections.
type ReportService interface {
	Submit(ctx context.Context, intake ReportIntake) (*Report, *Damage, error)
	Advance(ctx context.Context, sess *Session, id string, target Status) (*Report, error)
	SetStatus(ctx context.Context, sess *Session, id string, target Status) (*Report, error)
	Reconcile(ctx context.Context, id string) (*Report, *Damage, error)
}
