package catalog

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopstream/reco/core"
)

// 样例目录的类目全集（仅用于生成演示数据，编码时仍按目录实际出现的类目）。
var sampleCategories = []string{
	"Electronics", "Clothing", "Books", "Home & Kitchen", "Sports",
}

// Sample 生成一份合成商品目录，用于没有配置 CSV 时的启动/演示场景。
// 同样的 seed 产出完全相同的目录，方便复现问题。
func Sample(n int, seed int64) *Catalog {
	rng := rand.New(rand.NewSource(seed))
	products := make([]core.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, core.Product{
			ID:        fmt.Sprintf("P%03d", i),
			Name:      fmt.Sprintf("Product %d", i),
			Category:  sampleCategories[rng.Intn(len(sampleCategories))],
			Price:     round2(10 + rng.Float64()*490),
			Rating:    round1(3.0 + rng.Float64()*2.0),
			Views:     int64(100 + rng.Intn(9900)),
			Purchases: int64(10 + rng.Intn(990)),
		})
	}
	return New(products)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
