package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，按源的声明顺序合并结果。
//
// 合并是确定性的：每个源的结果先落到自己的槽位，全部完成后再按
// Sources 顺序拼接，不按完成顺序追加，否则推荐列表跨请求不可复现。
// Dedup 开启时按 ID 去重，保留第一次出现的（声明顺序靠前的源优先）。
type Fanout struct {
	Sources []Source
	Dedup   bool
	Timeout time.Duration // 每个召回源的超时时间，0 表示不限制
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	results := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		slot, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}
			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单个源超时/出错不中断其他源，该槽位为空
				return nil
			}
			results[slot] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*core.Item
	for _, items := range results {
		all = append(all, items...)
	}
	if !n.Dedup {
		return all, nil
	}

	seen := make(map[string]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
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
