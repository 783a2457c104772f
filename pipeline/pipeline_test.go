package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/shopstream/reco/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func(items []*core.Item) ([]*core.Item, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }

func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items)
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "gen", kind: KindRecall, fn: func(_ []*core.Item) ([]*core.Item, error) {
			return []*core.Item{core.NewItem("P1"), core.NewItem("P2"), core.NewItem("P3")}, nil
		}},
		&stubNode{name: "drop-first", kind: KindFilter, fn: func(items []*core.Item) ([]*core.Item, error) {
			return items[1:], nil
		}},
	}}

	out, err := p.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != "P2" {
		t.Errorf("Run() = %d items starting with %q, want 2 starting with P2", len(out), out[0].ID)
	}
}

func TestPipelineRun_NodeError(t *testing.T) {
	wantErr := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "bad", kind: KindRecall, fn: func(_ []*core.Item) ([]*core.Item, error) {
			return nil, wantErr
		}},
		&stubNode{name: "unreached", kind: KindReRank, fn: func(_ []*core.Item) ([]*core.Item, error) {
			t.Fatal("node after failure must not run")
			return nil, nil
		}},
	}}

	if _, err := p.Run(context.Background(), nil, nil); !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestPipelineRun_Empty(t *testing.T) {
	p := &Pipeline{}
	out, err := p.Run(context.Background(), nil, nil)
	if err != nil || out != nil {
		t.Errorf("empty pipeline = (%v, %v), want (nil, nil)", out, err)
	}
}
