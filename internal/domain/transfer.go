package domain

import "github.com/shopspring/decimal"

// TransferResult результат успешного трансфера
type TransferResult struct {
	Player          Player          `json:"player"`
	DestinationTeam Team            `json:"destinationTeam"`
	OriginTeam      *Team           `json:"originTeam,omitempty"`
	Fee             decimal.Decimal `json:"fee"`
}
