package similarity

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Matrix 是 N×N 的余弦相似度矩阵（N = 目录行数）。
// 构建完成后不可变；目录变化时整体重建，由引擎做原子替换。
type Matrix struct {
	n    int
	rows [][]float64
}

// Neighbor 是一次相似查询的单条结果：目录行号 + 相似度分数。
type Neighbor struct {
	Index int
	Score float64
}

// Build 对全部有序对 (i,j) 计算余弦相似度。
// 矩阵对称，只算上三角再镜像；按行并发，行内顺序计算。
// 成本 O(N²·F)，启动时一次性付清，之后所有查询都是纯读。
func Build(ctx context.Context, vectors [][]float64) (*Matrix, error) {
	n := len(vectors)
	m := &Matrix{n: n, rows: make([][]float64, n)}
	for i := range m.rows {
		m.rows[i] = make([]float64, n)
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		row := i
		eg.Go(func() error {
			for j := row; j < n; j++ {
				m.rows[row][j] = Cosine(vectors[row], vectors[j])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 镜像下三角
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			m.rows[i][j] = m.rows[j][i]
		}
	}
	return m, nil
}

// Len 返回矩阵维度。
func (m *Matrix) Len() int {
	return m.n
}

// At 返回 (i,j) 的相似度。
func (m *Matrix) At(i, j int) float64 {
	return m.rows[i][j]
}

// Query 返回与第 i 行最相似的 k 个行号（不含 i 自身），
// 按相似度降序；同分按行号升序。平序必须稳定，否则推荐列表
// 跨进程/跨平台不可复现，测试也无从写起。
func (m *Matrix) Query(i, k int) []Neighbor {
	if i < 0 || i >= m.n || k <= 0 {
		return nil
	}

	neighbors := make([]Neighbor, 0, m.n-1)
	for j := 0; j < m.n; j++ {
		if j == i {
			continue
		}
		neighbors = append(neighbors, Neighbor{Index: j, Score: m.rows[i][j]})
	}
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Score != neighbors[b].Score {
			return neighbors[a].Score > neighbors[b].Score
		}
		return neighbors[a].Index < neighbors[b].Index
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Cosine 计算两个向量的余弦相似度。
// 任一向量范数为 0 时（退化数值列 + 空类目集合会出现全零向量），
// 约定相似度为 0，避免除零。
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
