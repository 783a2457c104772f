package catalog

import (
	"sort"
	"strings"

	"github.com/shopstream/reco/core"
)

// Catalog 是进程内不可变的商品表。
//
// 加载完成后没有任何增删改操作：特征编码对 price/rating 做的是全目录
// min-max 归一化，任何目录变化都会让所有向量失效，所以目录变更只能
// 通过整体重建 + 原子替换（见 engine.Rebuild），不支持增量更新。
type Catalog struct {
	products   []core.Product
	index      map[string]int   // 商品 ID -> 行号
	categories []string         // 去重后的类目集合，字典序
	byCategory map[string][]int // 小写类目 -> 行号列表（保持目录行序）
}

// New 从商品列表构建目录。重复 ID 保留首次出现的行，后续忽略。
func New(products []core.Product) *Catalog {
	c := &Catalog{
		index:      make(map[string]int, len(products)),
		byCategory: make(map[string][]int),
	}
	seen := make(map[string]bool, 16)
	for _, p := range products {
		if _, dup := c.index[p.ID]; dup {
			continue
		}
		row := len(c.products)
		c.products = append(c.products, p)
		c.index[p.ID] = row

		lower := strings.ToLower(p.Category)
		c.byCategory[lower] = append(c.byCategory[lower], row)
		if !seen[p.Category] {
			seen[p.Category] = true
			c.categories = append(c.categories, p.Category)
		}
	}
	sort.Strings(c.categories)
	return c
}

// Len 返回目录行数。
func (c *Catalog) Len() int {
	return len(c.products)
}

// Product 返回指定行的商品。行号越界由调用方保证不发生。
func (c *Catalog) Product(row int) core.Product {
	return c.products[row]
}

// Products 返回全部商品（目录行序）。调用方按只读使用。
func (c *Catalog) Products() []core.Product {
	return c.products
}

// IndexOf 返回商品 ID 对应的行号。
func (c *Catalog) IndexOf(id string) (int, bool) {
	row, ok := c.index[id]
	return row, ok
}

// Categories 返回目录中实际出现的类目集合（去重、字典序）。
// one-hot 编码的列顺序就来自这里，所以向量宽度取决于目录内容。
//
// 去重是大小写敏感的（与 RowsByCategory 的查询折叠大小写不同）：
// "Electronics" 和 "electronics" 算两个类目、占两列。这是特征语义，
// 不是 bug，目录数据本身应该保证类目拼写一致。
func (c *Catalog) Categories() []string {
	return c.categories
}

// RowsByCategory 返回指定类目下的行号（目录行序），类目匹配大小写不敏感。
// 未知类目返回空切片。
func (c *Catalog) RowsByCategory(category string) []int {
	return c.byCategory[strings.ToLower(category)]
}
