package filter

import (
	"context"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
)

// Node 是过滤 Node，可以组合多个过滤器。
// 任何一个过滤器返回 true，该物品就会被移除；
// 过滤器出错时保留物品、继续流程（宁可多给不漏给）。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		removed := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				removed = true
				break
			}
		}
		if removed {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
