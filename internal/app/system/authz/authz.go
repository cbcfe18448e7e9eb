// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alexsaussier/teamdesk/internal/app/system/auth"
)

// UserCtx returns the caller's role (lowercased), name, user id, and a
// found flag. ok=true guarantees a valid, authenticated user with a
// well-formed ObjectID; malformed session ids fail closed.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// OrgScope returns the caller's organization id. Every store query must
// be filtered by this id; ok=false means the caller has no usable tenant
// and the operation must be rejected, never run unscoped.
func OrgScope(r *http.Request) (primitive.ObjectID, bool) {
	user, found := auth.CurrentUser(r)
	if !found || user.OrganizationID == "" {
		return primitive.NilObjectID, false
	}
	orgID, err := primitive.ObjectIDFromHex(user.OrganizationID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return orgID, true
}

// IsAdmin reports whether the caller can manage organization settings.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}
