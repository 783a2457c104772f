package server

import (
	"strconv"

	"github.com/shopstream/reco/core"
)

// 输入校验在这一层完成：引擎假定拿到的参数已经合法，不做二次校验。

const (
	userIDMinLength = 1
	userIDMaxLength = 100

	minRating = 0.0
	maxRating = 5.0
)

func validateUserID(userID string) error {
	if len(userID) < userIDMinLength || len(userID) > userIDMaxLength {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"User ID must be between 1 and 100 characters")
	}
	return nil
}

func validateProductID(productID string) error {
	if productID == "" {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"Product ID must be a non-empty string")
	}
	return nil
}

func validateCategory(category string) error {
	if category == "" {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"Category must be a non-empty string")
	}
	return nil
}

// clampLimit 把 limit 参数收敛到 [1, max]：非法/缺省取 def，超上限取 max。
func clampLimit(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// interactionRequest 是记录行为的请求体。
type interactionRequest struct {
	UserID          string   `json:"user_id"`
	ProductID       string   `json:"product_id"`
	InteractionType string   `json:"interaction_type"`
	Rating          *float64 `json:"rating"`
}

func (r *interactionRequest) validate() (*core.Interaction, error) {
	if err := validateUserID(r.UserID); err != nil {
		return nil, err
	}
	if err := validateProductID(r.ProductID); err != nil {
		return nil, err
	}

	// 行为类型缺省为 view，与原有 API 语义一致
	typ := core.InteractionType(r.InteractionType)
	if r.InteractionType == "" {
		typ = core.InteractionView
	}
	if !typ.Valid() {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"Interaction type must be one of: view, purchase, add_to_cart, wishlist")
	}

	if r.Rating != nil && (*r.Rating < minRating || *r.Rating > maxRating) {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"Rating must be between 0 and 5")
	}

	return &core.Interaction{
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Type:      typ,
		Rating:    r.Rating,
	}, nil
}
