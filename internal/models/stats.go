package models

// DailyStat is the derived aggregate for one calendar day.
type DailyStat struct {
	Date             string  `json:"date" validate:"required,datetime=2006-01-02"`
	CigaretteCount   int     `json:"cigaretteCount" validate:"gte=0"`
	MoneySaved       float64 `json:"moneySaved"`
	CravingsResisted int     `json:"cravingsResisted" validate:"gte=0"`
}
