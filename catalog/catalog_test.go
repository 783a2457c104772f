package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shopstream/reco/core"
)

func testProducts() []core.Product {
	return []core.Product{
		{ID: "P1", Name: "Laptop", Category: "Electronics", Price: 100, Rating: 4.5, Views: 1000, Purchases: 50},
		{ID: "P2", Name: "Phone", Category: "Electronics", Price: 110, Rating: 4.0, Views: 500, Purchases: 20},
		{ID: "P3", Name: "Novel", Category: "Books", Price: 10, Rating: 5.0, Views: 10, Purchases: 1},
	}
}

func TestNew(t *testing.T) {
	c := New(testProducts())

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	row, ok := c.IndexOf("P2")
	if !ok || row != 1 {
		t.Errorf("IndexOf(P2) = (%d, %v), want (1, true)", row, ok)
	}
	if _, ok := c.IndexOf("missing"); ok {
		t.Errorf("IndexOf(missing) should report not found")
	}

	// categories are distinct and sorted
	want := []string{"Books", "Electronics"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestNew_DuplicateIDKeepsFirst(t *testing.T) {
	products := append(testProducts(), core.Product{ID: "P1", Name: "Dup", Category: "Books"})
	c := New(products)

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (duplicate dropped)", c.Len())
	}
	row, _ := c.IndexOf("P1")
	if c.Product(row).Name != "Laptop" {
		t.Errorf("duplicate ID should keep first row, got %q", c.Product(row).Name)
	}
}

func TestCategories_CaseSensitive(t *testing.T) {
	c := New([]core.Product{
		{ID: "P1", Category: "Electronics"},
		{ID: "P2", Category: "electronics"},
	})
	// 类目集合大小写敏感：拼写不同的类目各占一列
	want := []string{"Electronics", "electronics"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	// 查询侧折叠大小写：两行都能按任一拼写查到
	if got := c.RowsByCategory("ELECTRONICS"); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("RowsByCategory(ELECTRONICS) = %v, want [0 1]", got)
	}
}

func TestRowsByCategory(t *testing.T) {
	c := New(testProducts())

	tests := []struct {
		category string
		want     []int
	}{
		{"Electronics", []int{0, 1}},
		{"electronics", []int{0, 1}}, // case-insensitive
		{"ELECTRONICS", []int{0, 1}},
		{"Books", []int{2}},
		{"Toys", nil},
	}
	for _, tt := range tests {
		if got := c.RowsByCategory(tt.category); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("RowsByCategory(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestEmptyCatalog(t *testing.T) {
	c := New(nil)
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if got := c.Categories(); len(got) != 0 {
		t.Errorf("Categories() = %v, want empty", got)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	data := "product_id,name,category,price,rating,views,purchases\n" +
		"P1,Laptop,Electronics,100,4.5,1000,50\n" +
		"P2,Phone,Electronics,110.50,4.0,500,20\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	p := c.Product(1)
	if p.ID != "P2" || p.Price != 110.50 || p.Views != 500 {
		t.Errorf("Product(1) = %+v", p)
	}
}

func TestLoadCSV_BadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	data := "product_id,name,category,price,rating,views,purchases\n" +
		"P1,Laptop,Electronics,not-a-price,4.5,1000,50\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCSV(path); err == nil {
		t.Fatal("LoadCSV() should fail on unparseable price")
	}
}

func TestSample_Deterministic(t *testing.T) {
	a := Sample(50, 42)
	b := Sample(50, 42)

	if a.Len() != 50 || b.Len() != 50 {
		t.Fatalf("Sample size = %d/%d, want 50", a.Len(), b.Len())
	}
	if !reflect.DeepEqual(a.Products(), b.Products()) {
		t.Error("Sample with same seed should produce identical catalogs")
	}
	if a.Product(0).ID != "P001" {
		t.Errorf("first sample ID = %q, want P001", a.Product(0).ID)
	}
}
