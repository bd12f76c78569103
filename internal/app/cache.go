package app

import (
	"context"
	"fmt"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func bizKey(id int64) string { return fmt.Sprintf("biz:%d", id) }

func reviewsKey(id int64, limit int) string {
	return fmt.Sprintf("reviews:%d:%d:-created_at", id, limit)
}

func reviewsPrefix(id int64) string { return fmt.Sprintf("reviews:%d:", id) }

// invalidateBusiness drops the business view plus every cached review page,
// whatever page size it was read with.
func invalidateBusiness(ctx context.Context, cache domain.Cache, id int64) {
	if cache == nil {
		return
	}
	_ = cache.Del(ctx, bizKey(id))
	_ = cache.DelPrefix(ctx, reviewsPrefix(id))
}
