package rerank

import (
	"context"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
)

// Dedup 按商品 ID 去重，保留第一次出现的物品。
//
// 个性化召回把多个种子的候选按种子顺序拼接，同一商品可能出现多次；
// first-seen-wins 意味着它挂的是最早那个种子给的相似度分数，
// 不是所有来源中的最高分，这是刻意选择的稳定语义。
// 被丢弃的重复项的 Labels 合并进保留项，保住 explain 信息。
type Dedup struct{}

func (n *Dedup) Name() string        { return "rerank.dedup" }
func (n *Dedup) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Dedup) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) <= 1 {
		return items, nil
	}

	seen := make(map[string]*core.Item, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if old, ok := seen[it.ID]; ok {
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out, nil
}
