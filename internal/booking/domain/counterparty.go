package domain

import "gorm.io/gorm"

// Counterparty 交易对手
type Counterparty struct {
	gorm.Model
	Code         string `gorm:"column:code;type:varchar(20);uniqueIndex;not null" json:"code"`
	Name         string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	LEI          string `gorm:"column:lei;type:varchar(20)" json:"lei"`
	SwiftCode    string `gorm:"column:swift_code;type:varchar(11)" json:"swift_code"`
	CreditRating string `gorm:"column:credit_rating;type:varchar(10)" json:"credit_rating"`
	Active       bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (Counterparty) TableName() string {
	return "counterparties"
}

// CanTrade 只有激活状态的对手方可以成交
func (c *Counterparty) CanTrade() bool {
	return c.Active
}
