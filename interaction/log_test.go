package interaction

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/store"
)

func TestMemoryLog_Append(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()

	events := []*core.Interaction{
		{UserID: "u1", ProductID: "P2", Type: core.InteractionView},
		{UserID: "u1", ProductID: "P1", Type: core.InteractionPurchase},
		{UserID: "u1", ProductID: "P2", Type: core.InteractionView}, // repeat
		{UserID: "u2", ProductID: "P3", Type: core.InteractionWishlist},
	}
	for _, evt := range events {
		if err := log.Append(ctx, evt); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if log.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (every event kept)", log.Len())
	}

	got, err := log.ProductsFor(ctx, "u1")
	if err != nil {
		t.Fatalf("ProductsFor() error = %v", err)
	}
	// 去重且按 ID 升序
	if want := []string{"P1", "P2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ProductsFor(u1) = %v, want %v", got, want)
	}

	if got, _ := log.ProductsFor(ctx, "unknown"); len(got) != 0 {
		t.Errorf("ProductsFor(unknown) = %v, want empty", got)
	}
}

func TestMemoryLog_StampsTimestamp(t *testing.T) {
	log := NewMemoryLog()
	before := time.Now()
	if err := log.Append(context.Background(), &core.Interaction{UserID: "u1", ProductID: "P1", Type: core.InteractionView}); err != nil {
		t.Fatal(err)
	}
	log.mu.RLock()
	ts := log.events[0].Timestamp
	log.mu.RUnlock()
	if ts.Before(before) || ts.After(time.Now()) {
		t.Errorf("Append should stamp current time, got %v", ts)
	}
}

func TestMemoryLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = log.Append(ctx, &core.Interaction{
					UserID:    "u1",
					ProductID: fmt.Sprintf("P%02d", j),
					Type:      core.InteractionView,
				})
			}
		}(i)
	}
	wg.Wait()

	if log.Len() != 200 {
		t.Errorf("Len() = %d, want 200", log.Len())
	}
	got, err := log.ProductsFor(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Errorf("ProductsFor(u1) has %d distinct products, want 10", len(got))
	}
}

func TestStoreLog(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	log := &StoreLog{Store: kv}

	events := []*core.Interaction{
		{UserID: "u1", ProductID: "P3", Type: core.InteractionView},
		{UserID: "u1", ProductID: "P1", Type: core.InteractionPurchase},
		{UserID: "u1", ProductID: "P3", Type: core.InteractionAddToCart},
	}
	for _, evt := range events {
		if err := log.Append(ctx, evt); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := log.ProductsFor(ctx, "u1")
	if err != nil {
		t.Fatalf("ProductsFor() error = %v", err)
	}
	if want := []string{"P1", "P3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ProductsFor(u1) = %v, want %v", got, want)
	}

	// 无记录的用户：底层 key 不存在，对上层表现为空集合而不是错误
	got, err = log.ProductsFor(ctx, "nobody")
	if err != nil {
		t.Fatalf("ProductsFor(nobody) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ProductsFor(nobody) = %v, want empty", got)
	}
}
