package reporthttp

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var reportGroup singleflight.Group

func singleflightLoad(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	resultChan := reportGroup.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return res.Val, res.Err
	}
}
