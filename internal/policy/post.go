// Package policy holds ownership rules for posts.
package policy

import "quill/internal/models"

// Action names an operation guarded by the post policy.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanModify reports whether userID may edit or update post.
// Anonymous callers (userID 0) never may.
func CanModify(userID uint, post *models.Post) bool {
	return isOwner(userID, post)
}

// CanDelete reports whether userID may delete post.
func CanDelete(userID uint, post *models.Post) bool {
	return isOwner(userID, post)
}

// Authorize returns a FORBIDDEN AppError when userID may not perform action on post.
func Authorize(action Action, userID uint, post *models.Post) error {
	var allowed bool
	switch action {
	case ActionUpdate:
		allowed = CanModify(userID, post)
	case ActionDelete:
		allowed = CanDelete(userID, post)
	}
	if allowed {
		return nil
	}
	return models.NewForbiddenError("You can only " + string(action) + " your own posts")
}

func isOwner(userID uint, post *models.Post) bool {
	return post != nil && userID != 0 && post.UserID == userID
}
