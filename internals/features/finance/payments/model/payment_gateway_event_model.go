package model

import (
	"time"

	"gorm.io/datatypes"
)

/*
tb_payment_gateway_event = log webhook / callback payment gateway.
Satu tagihan bisa punya banyak baris (tiap notifikasi), disimpan mentah untuk debug / replay.
*/

const ProviderMidtrans = "midtrans"

// Status pemrosesan internal
const (
	EventReceived         = "received"
	EventProcessed        = "processed"
	EventDuplicate        = "duplicate"
	EventIgnored          = "ignored"
	EventInvalidSignature = "invalid_signature"
	EventFailed           = "failed"
)

type PaymentGatewayEventModel struct {
	EventID uint `gorm:"column:event_id;primaryKey;autoIncrement" json:"event_id"`

	Provider          string  `gorm:"column:provider;type:varchar(20);not null" json:"provider"`
	OrderID           string  `gorm:"column:order_id;type:varchar(64);not null;index" json:"order_id"`
	TagihanID         *uint   `gorm:"column:tagihan_id;index" json:"tagihan_id"`
	TransactionID     *string `gorm:"column:transaction_id;type:varchar(64)" json:"transaction_id"`
	TransactionStatus string  `gorm:"column:transaction_status;type:varchar(30)" json:"transaction_status"`
	FraudStatus       string  `gorm:"column:fraud_status;type:varchar(20)" json:"fraud_status"`
	PaymentType       string  `gorm:"column:payment_type;type:varchar(30)" json:"payment_type"`

	// Raw data
	Headers   datatypes.JSON `gorm:"column:headers" json:"headers"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	Signature *string        `gorm:"column:signature;type:varchar(256)" json:"signature"`

	Status      string     `gorm:"column:status;type:varchar(20);not null;default:received" json:"status"`
	Error       *string    `gorm:"column:error;type:text" json:"error"`
	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processed_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentGatewayEventModel) TableName() string {
	return "tb_payment_gateway_event"
}
