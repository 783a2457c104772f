package rerank

import (
	"context"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
)

// TopN 截断节点：保留前 N 个物品，不改变已建立的顺序。
// N <= 0 表示不截断。
type TopN struct {
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
