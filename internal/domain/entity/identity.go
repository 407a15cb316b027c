package entity

import "time"

// IdentityKind tags which kind of principal a session carries.
type IdentityKind string

const (
	IdentityAnonymous IdentityKind = "anonymous"
	IdentityUser      IdentityKind = "user"
	IdentityAdmin     IdentityKind = "admin"
)

// Identity is the single principal attached to a request.
// SubjectID refers to the users collection for IdentityUser and to the
// admin_users collection for IdentityAdmin; it is zero when anonymous.
type Identity struct {
	Kind      IdentityKind
	SubjectID int64
}

// Anonymous is the identity of a caller without a valid session.
func Anonymous() Identity { return Identity{Kind: IdentityAnonymous} }

// UserIdentity builds a customer identity.
func UserIdentity(id int64) Identity { return Identity{Kind: IdentityUser, SubjectID: id} }

// AdminIdentity builds an administrator identity.
func AdminIdentity(id int64) Identity { return Identity{Kind: IdentityAdmin, SubjectID: id} }

// IsUser reports a customer identity with a real (positive) user id.
func (i Identity) IsUser() bool { return i.Kind == IdentityUser && i.SubjectID > 0 }

// IsAdmin reports an administrator identity with a real (positive) admin id.
func (i Identity) IsAdmin() bool { return i.Kind == IdentityAdmin && i.SubjectID > 0 }

// Session is server-side state referenced by the client's session cookie.
type Session struct {
	ID        string
	Identity  Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its lifetime at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
