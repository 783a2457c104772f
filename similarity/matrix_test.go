package similarity

import (
	"context"
	"math"
	"testing"
)

const eps = 1e-9

func buildTestMatrix(t *testing.T) *Matrix {
	t.Helper()
	// 与 feature.Encode 对三件商品（两类目）的输出一致：
	// P1=[0,1,0.9,0.5] P2=[0,1,1.0,0.0] P3=[1,0,0.0,1.0]
	vectors := [][]float64{
		{0, 1, 0.9, 0.5},
		{0, 1, 1.0, 0.0},
		{1, 0, 0.0, 1.0},
	}
	m, err := Build(context.Background(), vectors)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

func TestBuild(t *testing.T) {
	m := buildTestMatrix(t)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	// 对角线为 1
	for i := 0; i < m.Len(); i++ {
		if math.Abs(m.At(i, i)-1) > eps {
			t.Errorf("At(%d,%d) = %v, want 1", i, i, m.At(i, i))
		}
	}
	// 对称
	for i := 0; i < m.Len(); i++ {
		for j := 0; j < m.Len(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("At(%d,%d) = %v != At(%d,%d) = %v", i, j, m.At(i, j), j, i, m.At(j, i))
			}
		}
	}
	// 同类目且数值相近的 P1/P2 远比跨类目的 P1/P3 相似
	if m.At(0, 1) <= m.At(0, 2) {
		t.Errorf("At(0,1) = %v should exceed At(0,2) = %v", m.At(0, 1), m.At(0, 2))
	}
}

func TestBuild_Empty(t *testing.T) {
	m, err := Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if got := m.Query(0, 5); got != nil {
		t.Errorf("Query on empty matrix = %v, want nil", got)
	}
}

func TestQuery(t *testing.T) {
	m := buildTestMatrix(t)

	got := m.Query(0, 2)
	if len(got) != 2 {
		t.Fatalf("Query(0,2) returned %d neighbors, want 2", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Errorf("Query(0,2) order = [%d %d], want [1 2]", got[0].Index, got[1].Index)
	}
	for _, nb := range got {
		if nb.Index == 0 {
			t.Error("Query must not return the query row itself")
		}
	}

	// k 超过可用邻居数时截到实际数量
	if got := m.Query(0, 10); len(got) != 2 {
		t.Errorf("Query(0,10) returned %d neighbors, want 2", len(got))
	}
	// 非法入参
	if got := m.Query(-1, 2); got != nil {
		t.Errorf("Query(-1,2) = %v, want nil", got)
	}
	if got := m.Query(0, 0); got != nil {
		t.Errorf("Query(0,0) = %v, want nil", got)
	}
}

func TestQuery_TieBreak(t *testing.T) {
	// 三个完全相同的向量：所有相似度相等，平序必须按行号升序
	vectors := [][]float64{{1, 0}, {1, 0}, {1, 0}, {1, 0}}
	m, err := Build(context.Background(), vectors)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := m.Query(2, 3)
	want := []int{0, 1, 3}
	for i, nb := range got {
		if nb.Index != want[i] {
			t.Errorf("Query(2,3)[%d].Index = %d, want %d", i, nb.Index, want[i])
		}
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 2}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > eps {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
