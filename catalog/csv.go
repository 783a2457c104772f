package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shopstream/reco/core"
)

// CSV 表头（与离线导出格式一致）：
// product_id,name,category,price,rating,views,purchases
const csvColumns = 7

// LoadCSV 从 CSV 文件一次性加载商品目录。
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = csvColumns

	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) == 0 {
		return New(nil), nil
	}

	// 首行是表头
	products := make([]core.Product, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", i+2, err)
		}
		products = append(products, p)
	}
	return New(products), nil
}

func parseRow(rec []string) (core.Product, error) {
	var p core.Product
	p.ID = rec[0]
	p.Name = rec[1]
	p.Category = rec[2]

	var err error
	if p.Price, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return p, fmt.Errorf("price %q: %w", rec[3], err)
	}
	if p.Rating, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return p, fmt.Errorf("rating %q: %w", rec[4], err)
	}
	if p.Views, err = strconv.ParseInt(rec[5], 10, 64); err != nil {
		return p, fmt.Errorf("views %q: %w", rec[5], err)
	}
	if p.Purchases, err = strconv.ParseInt(rec[6], 10, 64); err != nil {
		return p, fmt.Errorf("purchases %q: %w", rec[6], err)
	}
	return p, nil
}
