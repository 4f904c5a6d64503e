package models

type Quote struct {
	ID         string `json:"id" validate:"required"`
	Text       string `json:"text" validate:"required"`
	Author     string `json:"author"`
	IsFavorite bool   `json:"isFavorite"`
	IsCustom   bool   `json:"isCustom"`
}
