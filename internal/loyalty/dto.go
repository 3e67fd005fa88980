package loyalty

// RedeemResult summarizes a completed redemption.
type RedeemResult struct {
	PointsRedeemed int `json:"points_redeemed"`
	PointsTotal    int `json:"points_total"`
	GiftsGenerated int `json:"gifts_generated"`
}

// GiftValidation is the public answer for a gift code lookup.
type GiftValidation struct {
	Valid        bool   `json:"valid"`
	CustomerName string `json:"customer_name"`
}
