package filter

import (
	"context"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
)

// Interacted 是已交互过滤 Node：移除用户自己交互过的商品，
// 永远不把用户已经有记录的东西再推荐出去。
//
// 直接实现 Node 而不是逐 item 的 Filter：交互集合一次取出，
// 避免对日志存储做 N 次往返。
type Interacted struct {
	Log core.InteractionLog
}

func (n *Interacted) Name() string        { return "filter.interacted" }
func (n *Interacted) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Interacted) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Log == nil || rctx == nil || rctx.UserID == "" || len(items) == 0 {
		return items, nil
	}

	ids, err := n.Log.ProductsFor(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return items, nil
	}

	interacted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		interacted[id] = struct{}{}
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, ok := interacted[it.ID]; ok {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
