package requestdata

import (
	"context"

	"github.com/google/uuid"
)

// RequestData carries the authenticated actor through the request context.
type RequestData struct {
	UserID uuid.UUID
	Email  string
}

type requestDataKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(requestDataKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}
