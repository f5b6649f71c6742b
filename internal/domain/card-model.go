package domain

import "time"

// AllowedCard is the payment-authorization oracle: a card is "valid" purely
// by exact membership in this table. Not a real payment processor.
type AllowedCard struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CardNumber  string    `gorm:"type:varchar(16);not null;uniqueIndex:uidx_allowed_cards_number_expiry" json:"card_number"`
	ExpiryMonth int       `gorm:"not null;uniqueIndex:uidx_allowed_cards_number_expiry" json:"expiry_month"`
	ExpiryYear  int       `gorm:"not null;uniqueIndex:uidx_allowed_cards_number_expiry" json:"expiry_year"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`
}
