package models

import "time"

const (
	PaymentRecordCompleted = "completed"
	PaymentRecordPending   = "pending"
)

// Payment is an append-only ledger entry for one confirmed checkout.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	PaymentID     string    `bson:"paymentId" json:"paymentId"` // originating booking id
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Customer      string    `bson:"customer" json:"customer"`
	Status        string    `bson:"status" json:"status"`
	ServiceName   string    `bson:"serviceName" json:"serviceName"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	Price         float64   `bson:"price" json:"price"`
	Currency      string    `bson:"currency" json:"currency"`
	PaymentDate   time.Time `bson:"paymentDate" json:"paymentDate"`
}
