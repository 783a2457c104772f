package interaction

import (
	"context"
	"sort"
	"time"

	"github.com/shopstream/reco/core"
)

// StoreLog 是基于 KeyValueStore 的行为日志适配器：
// 每个用户一个有序集合，member = 商品 ID，score = 首次交互时间戳。
// 搭配 store.RedisStore 可以让多个实例共享同一份行为数据；
// 推荐路径只消费"用户交互过哪些商品"这个集合视图，事件明细不在这里保存。
type StoreLog struct {
	Store core.KeyValueStore

	// KeyPrefix 是存储 key 前缀，实际 key 为 {KeyPrefix}:{UserID}。
	// 默认 "user:interactions"。
	KeyPrefix string
}

func (l *StoreLog) key(userID string) string {
	prefix := l.KeyPrefix
	if prefix == "" {
		prefix = "user:interactions"
	}
	return prefix + ":" + userID
}

// Append 把商品加入用户的交互集合。重复交互同一商品时
// ZAdd 覆盖分数，集合语义不变。
func (l *StoreLog) Append(ctx context.Context, in *core.Interaction) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return l.Store.ZAdd(ctx, l.key(in.UserID), float64(ts.UnixNano()), in.ProductID)
}

// ProductsFor 返回用户交互过的商品 ID，按 ID 升序。
func (l *StoreLog) ProductsFor(ctx context.Context, userID string) ([]string, error) {
	ids, err := l.Store.ZRange(ctx, l.key(userID), 0, -1)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

var _ core.InteractionLog = (*StoreLog)(nil)
