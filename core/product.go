package core

// Product 是商品目录中的一行：描述属性 + 热度属性。
// 进程启动时一次性加载，加载完成后不可变；目录层（catalog）是唯一所有者。
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Rating    float64
	Views     int64
	Purchases int64
}

// ProductItem 把商品包装成链路中的 Item，Meta 携带响应需要的描述字段。
func ProductItem(p Product) *Item {
	it := NewItem(p.ID)
	it.Meta["name"] = p.Name
	it.Meta["category"] = p.Category
	it.Meta["price"] = p.Price
	it.Meta["rating"] = p.Rating
	it.Meta["views"] = p.Views
	it.Meta["purchases"] = p.Purchases
	return it
}
