package resp

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// NewContext stores res in ctx.
func NewContext(ctx context.Context, res *Response) context.Context {
	return context.WithValue(ctx, switchback.ResponseKey, res)
}

// FromContext retrieves the *Response stored in ctx by NewContext.
func FromContext(ctx context.Context) (*Response, bool) {
	res, ok := ctx.Value(switchback.ResponseKey).(*Response)
	return res, ok && res != nil
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, status int, data map[string]any) *logger.LogContext {
	if r == nil && err == nil && status == 0 && data == nil {
		return nil
	}

	return &logger.LogContext{
		Data:    data,
		Error:   err,
		Request: r,
		Status:  status,
	}
}
