package core

import (
	"context"
	"time"
)

// InteractionType 是用户行为类型（封闭集合，入参校验由调用层完成）。
type InteractionType string

const (
	InteractionView      InteractionType = "view"
	InteractionPurchase  InteractionType = "purchase"
	InteractionAddToCart InteractionType = "add_to_cart"
	InteractionWishlist  InteractionType = "wishlist"
)

// InteractionTypes 返回所有合法的行为类型，供调用层做枚举校验。
func InteractionTypes() []InteractionType {
	return []InteractionType{
		InteractionView,
		InteractionPurchase,
		InteractionAddToCart,
		InteractionWishlist,
	}
}

// Valid 判断行为类型是否在封闭集合内。
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionPurchase, InteractionAddToCart, InteractionWishlist:
		return true
	}
	return false
}

// Interaction 是一条用户行为事件：只追加，不更新、不删除。
// ProductID 不做存在性校验，允许悬挂引用（推荐侧按"无数据"处理）。
type Interaction struct {
	UserID    string
	ProductID string
	Type      InteractionType
	Rating    *float64 // 可选评分
	Timestamp time.Time
}

// InteractionLog 是行为日志的领域接口，由 interaction 包实现。
//
// 设计要点：
//   - Append 永远成功（无目录存在性检查），未填时间戳时由实现打点
//   - ProductsFor 返回用户交互过的去重商品 ID，按 ID 升序：
//     个性化召回按这个确定性顺序遍历种子，保证结果可复现
//   - 并发 Append 安全；读方看到一致（可能略旧）的快照即可
type InteractionLog interface {
	Append(ctx context.Context, in *Interaction) error
	ProductsFor(ctx context.Context, userID string) ([]string, error)
}
