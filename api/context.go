package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/models"
)

type keyType string

const (
	userIDKey   keyType = "userID"
	userRoleKey keyType = "userRole"
)

// ctxWithCaller attaches the authenticated caller's id and role to the context
func ctxWithCaller(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, claims.UserID)
	return context.WithValue(ctx, userRoleKey, claims.Role)
}

// ctxCaller retrieves the authenticated caller's id and role from the context
func ctxCaller(ctx context.Context) (uuid.UUID, models.UserRole, error) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", errors.New("no authenticated user in context")
	}
	role, ok := ctx.Value(userRoleKey).(models.UserRole)
	if !ok {
		return uuid.Nil, "", errors.New("no user role in context")
	}
	return id, role, nil
}
