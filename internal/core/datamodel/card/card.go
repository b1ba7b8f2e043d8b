package card

import "time"

type Card struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	LastFourDigits string    `gorm:"column:last_four_digits;size:4;not null"`
	Brand          string    `gorm:"column:brand"`
	ClosingDay     *int      `gorm:"column:closing_day"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Card) TableName() string {
	return "cards"
}
