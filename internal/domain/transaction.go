package domain

import "github.com/shopspring/decimal" // Fixed-point money type

// Transaction types recorded in the ledger. A transfer writes two rows,
// one per party, sharing the amount but not the id.
const (
	TypeDeposit     = "Deposit"      // Credit from a deposit
	TypeWithdrawal  = "Withdrawal"   // Debit from a withdrawal
	TypeTransferOut = "Transfer Out" // Debit side of a transfer
	TypeTransferIn  = "Transfer In"  // Credit side of a transfer
)

// Transaction Model
type Transaction struct {
	ID        uint            `gorm:"primaryKey"`           // Primary key, ascending in creation order
	UserID    uint            `gorm:"not null"`             // Foreign key to the owning User
	Type      string          `gorm:"not null"`             // One of the Type* constants above
	Amount    decimal.Decimal `gorm:"not null"`             // Amount of the transaction, always positive
	CreatedAt int64           `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
