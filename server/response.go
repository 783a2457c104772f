package server

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstream/reco/core"
)

// 响应字段与原有对外 API 对齐：
// 相似/个性化结果携带 similarity_score，热门结果携带 views/purchases，
// 类目结果只有描述字段。

func similarProductJSON(it *core.Item) gin.H {
	return gin.H{
		"product_id":       it.ID,
		"name":             it.MetaString("name"),
		"category":         it.MetaString("category"),
		"price":            it.MetaFloat("price"),
		"rating":           it.MetaFloat("rating"),
		"similarity_score": it.Score,
	}
}

func trendingProductJSON(it *core.Item) gin.H {
	return gin.H{
		"product_id": it.ID,
		"name":       it.MetaString("name"),
		"category":   it.MetaString("category"),
		"price":      it.MetaFloat("price"),
		"rating":     it.MetaFloat("rating"),
		"views":      int64(it.MetaFloat("views")),
		"purchases":  int64(it.MetaFloat("purchases")),
	}
}

func categoryProductJSON(it *core.Item) gin.H {
	return gin.H{
		"product_id": it.ID,
		"name":       it.MetaString("name"),
		"category":   it.MetaString("category"),
		"price":      it.MetaFloat("price"),
		"rating":     it.MetaFloat("rating"),
	}
}

// recommendationJSON 按物品来源选择形态：热门兜底的物品保持热门榜形态，
// 相似扩展的物品携带相似度分。
func recommendationJSON(it *core.Item) gin.H {
	if lbl, ok := it.Labels["source"]; ok && lbl.Value == "trending" {
		return trendingProductJSON(it)
	}
	return similarProductJSON(it)
}

func toJSONList(items []*core.Item, conv func(*core.Item) gin.H) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}
