package rerank

import (
	"context"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
)

// Diversity 是一个简单的多样性重排：按类目去重，每个类目保留首个出现的商品。
// 类目取自 item.Meta["category"]；没有类目的物品原样保留。
// 个性化结果容易被单一类目刷屏（种子都来自同一类目时），需要多样性时可以挂这个节点。
type Diversity struct {
	MetaKey string // 默认 "category"
}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	key := n.MetaKey
	if key == "" {
		key = "category"
	}

	seen := make(map[string]bool, 8)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		category := it.MetaString(key)
		if category == "" {
			out = append(out, it)
			continue
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, it)
	}
	return out, nil
}
