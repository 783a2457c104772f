package filter

import (
	"context"

	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/pkg/dsl"
)

// Rule 是配置驱动的业务规则过滤器：表达式命中的物品被移除。
// 例如 exclude_rule: `item.price >= 500.0` 把高价商品从个性化结果中剔除。
type Rule struct {
	prog *dsl.Program
}

// NewRule 编译排除规则表达式。
func NewRule(expr string) (*Rule, error) {
	prog, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{prog: prog}, nil
}

func (f *Rule) Name() string { return "filter.rule" }

// ShouldFilter 表达式返回 true 时过滤该物品；表达式执行出错时保留。
func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.prog == nil || item == nil {
		return false, nil
	}
	return f.prog.Eval(item, rctx)
}

var _ Filter = (*Rule)(nil)
