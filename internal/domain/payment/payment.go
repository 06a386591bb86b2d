package payment

import (
	"errors"
	"math"
	"time"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrConflict      = errors.New("payment: already exists")
	ErrInvalidAmount = errors.New("payment: amount must be greater than zero")
	ErrInvalidState  = errors.New("payment: invalid status transition")
)

type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusRefunded  Status = "REFUNDED"
)

const DefaultMethod = "cash"

// Payment is one recorded transaction against an order id. The amount is
// fixed at creation. Whether it matches the referenced order's total is the
// caller's responsibility; no linkage to the order table is checked here.
type Payment struct {
	ID        int64
	TenantID  int64
	OrderID   int64
	Amount    float64
	Method    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, tenantID, orderID int64, amount float64, method string) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if method == "" {
		method = DefaultMethod
	}

	now := time.Now().UTC()
	return &Payment{
		ID:        id,
		TenantID:  tenantID,
		OrderID:   orderID,
		Amount:    math.Round(amount*100) / 100,
		Method:    method,
		Status:    StatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Refund transitions COMPLETED → REFUNDED. REFUNDED is terminal.
func (p *Payment) Refund() error {
	if p.Status != StatusCompleted {
		return ErrInvalidState
	}
	p.Status = StatusRefunded
	p.touch()
	return nil
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now().UTC()
}
