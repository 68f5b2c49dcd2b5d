// internal/domain/models/transaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction tabs distinguish money paid to a party from work billed by it.
const (
	TabPayment = "payment"
	TabExpense = "expense"
)

// ValidTab reports whether t is a known transaction tab.
func ValidTab(t string) bool {
	return t == TabPayment || t == TabExpense
}

// Transaction is a dated ledger entry against a party.
type Transaction struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	PartyID primitive.ObjectID `bson:"party_id" json:"party_id"`
	Tab     string             `bson:"tab" json:"tab"` // payment | expense
	Date    time.Time          `bson:"date" json:"date"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"`
	Amount  float64            `bson:"amount" json:"amount"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BalanceDelta is the signed effect this transaction has on its party's
// balance: expenses add to what is owed, payments subtract from it.
func (t Transaction) BalanceDelta() float64 {
	if t.Tab == TabPayment {
		return -t.Amount
	}
	return t.Amount
}
