package rank

import (
	"sort"

	"github.com/shopstream/reco/catalog"
	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pkg/utils"
)

// 热度分权重。rating 先放大到 0-500 量级再加权，
// 避免被 views/purchases 完全淹没。
const (
	WeightViews     = 0.3
	WeightPurchases = 0.5
	WeightRating    = 0.2
)

// TrendingScore 计算单个商品的热度分：
// views*0.3 + purchases*0.5 + rating*100*0.2。纯函数，无副作用。
func TrendingScore(p core.Product) float64 {
	return float64(p.Views)*WeightViews +
		float64(p.Purchases)*WeightPurchases +
		p.Rating*100*WeightRating
}

// TopTrending 返回目录中热度分最高的 limit 个商品。
// 同分按目录行序（先出现者优先），空目录返回空序列。
// 热度是目录的确定性函数：同一目录重复调用结果完全一致。
func TopTrending(cat *catalog.Catalog, limit int) []*core.Item {
	n := cat.Len()
	if n == 0 || limit <= 0 {
		return []*core.Item{}
	}

	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return TrendingScore(cat.Product(rows[a])) > TrendingScore(cat.Product(rows[b]))
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*core.Item, 0, len(rows))
	for _, row := range rows {
		p := cat.Product(row)
		it := core.ProductItem(p)
		it.Score = TrendingScore(p)
		it.PutLabel("source", utils.Label{Value: "trending", Source: "rank"})
		out = append(out, it)
	}
	return out
}

// TopByRating 返回指定行号集合中评分最高的 limit 个商品，
// 同分按目录行序。类目查询用它对匹配行排序。
func TopByRating(cat *catalog.Catalog, rows []int, limit int) []*core.Item {
	if len(rows) == 0 || limit <= 0 {
		return []*core.Item{}
	}

	sorted := make([]int, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(a, b int) bool {
		return cat.Product(sorted[a]).Rating > cat.Product(sorted[b]).Rating
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]*core.Item, 0, len(sorted))
	for _, row := range sorted {
		p := cat.Product(row)
		it := core.ProductItem(p)
		it.Score = p.Rating
		it.PutLabel("source", utils.Label{Value: "category", Source: "rank"})
		out = append(out, it)
	}
	return out
}
