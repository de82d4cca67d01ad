package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FinanceType classifies a finance entry.
type FinanceType string

const (
	FinanceIncome     FinanceType = "income"
	FinanceExpense    FinanceType = "expense"
	FinanceInvestment FinanceType = "investment"
)

// Finance is a money movement on a date. Amount is in minor units (cents).
type Finance struct {
	ID          int64       `json:"id"`
	Author      string      `json:"author"`
	Date        string      `json:"date"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Purpose     string      `json:"purpose"`
	Amount      int64       `json:"amount"`
	FinanceType FinanceType `json:"financeType"`
	Recurring   bool        `json:"recurring"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Validate implements validation.Validatable.
func (f Finance) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Date, validation.Required, dateKey),
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.FinanceType, validation.Required, validation.In(FinanceIncome, FinanceExpense, FinanceInvestment)),
	)
}
