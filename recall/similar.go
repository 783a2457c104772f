package recall

import (
	"context"

	"github.com/shopstream/reco/catalog"
	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pipeline"
	"github.com/shopstream/reco/pkg/utils"
	"github.com/shopstream/reco/similarity"
)

// Snapshot 返回当前生效的目录 + 相似度矩阵。
// 两者必须同时重建、同时发布（维度必须一致），所以作为一个快照获取。
type Snapshot func() (*catalog.Catalog, *similarity.Matrix)

// Similar 是基于内容的相似扩展召回源：
// 取用户交互过的商品作为种子，对每个种子查相似度矩阵取 TopK 候选。
//
// 注意这不是协同过滤：没有任何跨用户信号，只是用内容相似度
// 扩展用户自己的历史。
//
// 种子按商品 ID 升序遍历（InteractionLog 保证），候选列表按种子顺序
// 拼接，所以同一商品从多个种子召回时，先遍历到的种子的分数胜出。
type Similar struct {
	Log      core.InteractionLog
	Snapshot Snapshot

	// CandidateK 是每个种子取的候选宽度，应大于最终 limit，
	// 给下游过滤/去重留够材料。默认 10。
	CandidateK int
}

func (r *Similar) Name() string        { return "recall.similar" }
func (r *Similar) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Similar) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Similar) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Log == nil || r.Snapshot == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	seeds, err := r.Log.ProductsFor(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, nil
	}

	cat, matrix := r.Snapshot()

	k := r.CandidateK
	if k <= 0 {
		k = 10
	}

	var out []*core.Item
	for _, seed := range seeds {
		// 行为日志允许悬挂引用：种子不在目录里就当"无数据"跳过
		row, ok := cat.IndexOf(seed)
		if !ok {
			continue
		}
		for _, nb := range matrix.Query(row, k) {
			it := core.ProductItem(cat.Product(nb.Index))
			it.Score = nb.Score
			it.PutLabel("recall_source", utils.Label{Value: "similar", Source: "recall"})
			it.PutLabel("seed", utils.Label{Value: seed, Source: "recall"})
			out = append(out, it)
		}
	}
	return out, nil
}
