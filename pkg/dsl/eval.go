package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shopstream/reco/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的业务规则表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次，可并发多次 Eval。
//
// 表达式语法（CEL 标准语法），item 上可访问 id/score 以及 Meta 中的商品字段：
//   - `item.price < 500.0`                        → 只保留低价商品
//   - `item.category == "Electronics"`            → 按类目圈选
//   - `item.rating >= 4.0 && item.score > 0.5`    → 组合条件
//   - `rctx.user_id == "u1"`                      → 用户级条件
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本（用于日志/explain）。
func (p *Program) Expr() string { return p.expr }

// Eval 在单个 Item 上执行规则，返回布尔结果。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；调用方用 item.key != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	// item.price / item.category 等商品字段直接展开到顶层，表达式写起来更顺手
	itemMap := map[string]any{
		"id":    "",
		"score": 0.0,
	}
	if item != nil {
		itemMap["id"] = item.ID
		itemMap["score"] = item.Score
		for k, v := range item.Meta {
			itemMap[k] = v
		}
	}

	rctxMap := map[string]any{
		"user_id": "",
		"scene":   "",
	}
	if rctx != nil {
		rctxMap["user_id"] = rctx.UserID
		rctxMap["scene"] = rctx.Scene
		rctxMap["params"] = rctx.Params
	}

	return map[string]any{
		"item": itemMap,
		"rctx": rctxMap,
	}
}
