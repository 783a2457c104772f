package core

import (
	"errors"
	"testing"

	"github.com/shopstream/reco/pkg/utils"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "bad row")
	if err.Error() != "bad row" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsInvalidInput(err) {
		t.Error("IsInvalidInput should match")
	}
	if IsNotFound(err) {
		t.Error("IsNotFound should not match INVALID_INPUT")
	}
	if IsInvalidInput(errors.New("plain")) {
		t.Error("plain errors are not domain errors")
	}
	if GetDomainError(nil) != nil {
		t.Error("GetDomainError(nil) should be nil")
	}
}

func TestIsStoreNotFound(t *testing.T) {
	if !IsStoreNotFound(ErrStoreNotFound) {
		t.Error("IsStoreNotFound(ErrStoreNotFound) should be true")
	}
	// 同 code 但不同模块的错误不算 store not found
	other := NewDomainError(ModuleCatalog, ErrorCodeNotFound, "missing")
	if IsStoreNotFound(other) {
		t.Error("catalog NOT_FOUND must not match store not found")
	}
}

func TestInteractionTypeValid(t *testing.T) {
	for _, typ := range InteractionTypes() {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if InteractionType("teleport").Valid() {
		t.Error("unknown type should be invalid")
	}
	if InteractionType("").Valid() {
		t.Error("empty type should be invalid")
	}
}

func TestProductItem(t *testing.T) {
	p := Product{ID: "P1", Name: "Laptop", Category: "Electronics", Price: 100, Rating: 4.5, Views: 1000, Purchases: 50}
	it := ProductItem(p)

	if it.ID != "P1" {
		t.Errorf("ID = %q", it.ID)
	}
	if it.MetaString("name") != "Laptop" || it.MetaString("category") != "Electronics" {
		t.Errorf("meta strings = %q/%q", it.MetaString("name"), it.MetaString("category"))
	}
	if it.MetaFloat("price") != 100 || it.MetaFloat("views") != 1000 {
		t.Errorf("meta floats = %v/%v", it.MetaFloat("price"), it.MetaFloat("views"))
	}
	if it.MetaFloat("missing") != 0 || it.MetaString("missing") != "" {
		t.Error("missing meta keys should return zero values")
	}
}

func TestItemPutLabel(t *testing.T) {
	it := NewItem("P1")
	it.PutLabel("seed", utils.Label{Value: "A", Source: "recall"})
	it.PutLabel("seed", utils.Label{Value: "B", Source: "recall"})

	lb := it.Labels["seed"]
	if lb.Value != "A|B" {
		t.Errorf("merged value = %q, want A|B", lb.Value)
	}
	if lb.Source != "recall,recall" {
		t.Errorf("merged source = %q, want recall,recall", lb.Source)
	}
}

func TestRecommendContextLabels(t *testing.T) {
	rctx := &RecommendContext{UserID: "u1"}
	if _, ok := rctx.GetLabel("missing"); ok {
		t.Error("GetLabel on empty context should miss")
	}
	rctx.PutLabel("segment", utils.Label{Value: "new_user", Source: "profile"})
	lb, ok := rctx.GetLabel("segment")
	if !ok || lb.Value != "new_user" {
		t.Errorf("GetLabel = (%v, %v)", lb, ok)
	}
}
