package recall

import (
	"context"

	"github.com/shopstream/reco/catalog"
	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
	"github.com/shopstream/reco/pkg/utils"
	"github.com/shopstream/reco/rank"
)

// Hot 是热门召回源：
// - 优先从 Store 的有序集合读取热门商品（由 engine.PublishHot 或离线任务写入）
// - Store 为空或 key 不存在时，直接在目录上按热度分兜底
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store core.KeyValueStore
	Key   string // 存储 key，例如 "hot:products"

	Catalog *catalog.Catalog
	TopK    int // 默认 20
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	if r.Store != nil && r.Key != "" {
		ids, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK)-1)
		if err == nil && len(ids) > 0 {
			out := make([]*core.Item, 0, len(ids))
			for _, id := range ids {
				row, ok := r.Catalog.IndexOf(id)
				if !ok {
					continue // 榜单里的悬挂引用按"无数据"跳过
				}
				p := r.Catalog.Product(row)
				it := core.ProductItem(p)
				it.Score = rank.TrendingScore(p)
				it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
				out = append(out, it)
			}
			if len(out) > 0 {
				return out, nil
			}
		}
	}

	// 兜底：直接在目录上算热度
	items := rank.TopTrending(r.Catalog, topK)
	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
	}
	return items, nil
}
