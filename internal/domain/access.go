package domain

// Actor is the identity performing an operation, as supplied by the identity collaborator.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// HasWriteAccess reports whether actor may mutate a resource owned by ownerUserID.
// Administrators may write anything; everyone else only what they own.
func HasWriteAccess(ownerUserID string, actor Actor) bool {
	if actor.IsAdmin {
		return true
	}
	return actor.UserID != "" && actor.UserID == ownerUserID
}

// CheckWriteAccess is HasWriteAccess expressed as an ACCESS_DENIED error.
func CheckWriteAccess(ownerUserID string, actor Actor) error {
	if HasWriteAccess(ownerUserID, actor) {
		return nil
	}
	return NewAccessDeniedError("you do not have write access to this resource").
		WithContext("user_id", actor.UserID)
}
