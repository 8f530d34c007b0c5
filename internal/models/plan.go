package models

// Plan описывает тариф подписки. Данные только читаются.
type Plan struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Slug               string   `json:"slug"`
	Description        string   `json:"description"`
	PriceMonthly       float64  `json:"priceMonthly"`
	Features           []string `json:"features"`
	MaxLoyaltyPrograms *int     `json:"maxLoyaltyPrograms"` // nil — без ограничений
	DisplayOrder       int      `json:"displayOrder"`
}

// Unlimited сообщает, что число программ лояльности не ограничено.
func (p Plan) Unlimited() bool {
	return p.MaxLoyaltyPrograms == nil
}
