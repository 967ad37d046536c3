package auth

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

type principalKey struct{}

// ContextWithPrincipal attaches the authenticated user to ctx.
func ContextWithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

func PrincipalFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey{}).(*models.User)
	return user, ok && user != nil
}

// CheckOwnership allows a mutation of target only by the user of that name.
func CheckOwnership(principal *models.User, target string) error {
	if principal == nil || principal.UserName != target {
		return common.ErrPermissionDenied
	}
	return nil
}
