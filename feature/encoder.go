package feature

import "github.com/shopstream/reco/catalog"

// Encode 把商品目录编码成稠密特征矩阵，行序与目录行序对齐。
//
// 向量布局：类目 one-hot（列序 = catalog.Categories() 的字典序）+
// price、rating 两列 min-max 归一化。向量宽度 = 类目数 + 2，
// 取决于目录内容而不是固定全集。
//
// 编码是目录快照的纯函数：同一目录编码两次得到完全相同的矩阵。
// min/max 取自整个目录，所以目录一旦变化，所有向量都要重新编码。
func Encode(cat *catalog.Catalog) [][]float64 {
	n := cat.Len()
	if n == 0 {
		return nil
	}

	categories := cat.Categories()
	colOf := make(map[string]int, len(categories))
	for i, c := range categories {
		colOf[c] = i
	}

	prices := make([]float64, n)
	ratings := make([]float64, n)
	for row := 0; row < n; row++ {
		p := cat.Product(row)
		prices[row] = p.Price
		ratings[row] = p.Rating
	}
	priceScaler := FitMinMax(prices)
	ratingScaler := FitMinMax(ratings)

	width := len(categories) + 2
	vectors := make([][]float64, n)
	for row := 0; row < n; row++ {
		p := cat.Product(row)
		vec := make([]float64, width)
		vec[colOf[p.Category]] = 1.0
		vec[len(categories)] = priceScaler.Scale(p.Price)
		vec[len(categories)+1] = ratingScaler.Scale(p.Rating)
		vectors[row] = vec
	}
	return vectors
}

// MinMaxScaler 对单列数值做 min-max 归一化：x' = (x - min) / (max - min)。
type MinMaxScaler struct {
	Min float64
	Max float64
}

// FitMinMax 在一列数值上拟合 min/max。空列返回零值 scaler。
func FitMinMax(values []float64) MinMaxScaler {
	if len(values) == 0 {
		return MinMaxScaler{}
	}
	s := MinMaxScaler{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Scale 归一化单个值到 [0,1]。
// 退化目录（max == min，列无方差）时所有行统一取 0，避免除零。
func (s MinMaxScaler) Scale(v float64) float64 {
	span := s.Max - s.Min
	if span == 0 {
		return 0
	}
	return (v - s.Min) / span
}
