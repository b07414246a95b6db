package entity

import (
	"context"
	"errors"
)

type (
	CtxKeyIP      struct{}
	CtxKeyUser    struct{}
	CtxKeySession struct{}
)

func UserFromContext(ctx context.Context) (User, error) {
	user, ok := ctx.Value(CtxKeyUser{}).(User)
	if !ok {
		return User{}, errors.New("data type casting")
	}

	return user, nil
}

func SetUserToContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, CtxKeyUser{}, user)
}

func SessionFromContext(ctx context.Context) string {
	session, ok := ctx.Value(CtxKeySession{}).(string)
	if !ok {
		return ""
	}

	return session
}

func SetSessionToContext(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, CtxKeySession{}, session)
}
