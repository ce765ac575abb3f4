package domain

import "github.com/shopspring/decimal"

type Team struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Balance              decimal.Decimal `json:"balance"`
	CommissionPercentage int             `json:"commissionPercentage"`
}

// TeamWithPlayers агрегат команды вместе с её игроками
type TeamWithPlayers struct {
	Team
	Players []Player `json:"players"`
}

func NewTeam(name string, balance decimal.Decimal, commissionPercentage int) *Team {
	return &Team{
		Name:                 name,
		Balance:              balance,
		CommissionPercentage: commissionPercentage,
	}
}

func (t *Team) Validate() error {
	if t.Name == "" {
		return ErrInvalidInput
	}
	if t.Balance.IsNegative() {
		return ErrInvalidInput
	}
	if t.CommissionPercentage < 0 || t.CommissionPercentage > 100 {
		return ErrInvalidInput
	}
	return nil
}
