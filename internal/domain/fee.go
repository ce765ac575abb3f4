package domain

import "github.com/shopspring/decimal"

var (
	basePriceRate = decimal.NewFromInt(100000)
	oneHundred    = decimal.NewFromInt(100)
)

// ComputeTransferFee вычисляет стоимость трансфера игрока в команду-покупателя.
//
// basePrice = experienceMonths * 100000 / age
// commission = basePrice * commissionPercentage / 100
// fee = round2(basePrice + commission)
//
// Pure function: no side effects, deterministic given its inputs.
// An age of zero is a domain error, never a division by zero.
func ComputeTransferFee(player *Player, destination *Team) (decimal.Decimal, error) {
	age := player.Age()
	if age <= 0 {
		return decimal.Zero, ErrInvalidAge
	}

	basePrice := decimal.NewFromInt(int64(player.ExperienceMonths)).
		Mul(basePriceRate).
		Div(decimal.NewFromInt(int64(age)))

	commission := basePrice.
		Mul(decimal.NewFromInt(int64(destination.CommissionPercentage))).
		Div(oneHundred)

	// Round half-up on the cent boundary
	return basePrice.Add(commission).Round(2), nil
}
