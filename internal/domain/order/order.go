package order

import (
	"errors"
	"math"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrConflict        = errors.New("order: already exists")
	ErrNoLines         = errors.New("order: at least one line is required")
	ErrInvalidQuantity = errors.New("order: line quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("order: unit price must be zero or greater")
	ErrInvalidState    = errors.New("order: invalid status transition")
)

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusCancelled Status = "CANCELLED"
)

// Line is one immutable item position inside an order.
type Line struct {
	ItemID    int64
	Quantity  int
	UnitPrice float64
}

func NewLine(itemID int64, quantity int, unitPrice float64) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return Line{}, ErrInvalidPrice
	}
	return Line{ItemID: itemID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// Subtotal is quantity × unit price rounded to 2 decimal places.
func (l Line) Subtotal() float64 {
	return round2(float64(l.Quantity) * l.UnitPrice)
}

// Order is one purchase record. Total is computed once at creation and
// never recomputed afterwards.
type Order struct {
	ID        int64
	TenantID  int64
	Lines     []Line
	Status    Status
	Total     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, tenantID int64, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal()
	}

	now := time.Now().UTC()
	return &Order{
		ID:        id,
		TenantID:  tenantID,
		Lines:     append([]Line(nil), lines...),
		Status:    StatusCreated,
		Total:     round2(sum),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Cancel transitions CREATED → CANCELLED. Any other starting status fails.
func (o *Order) Cancel() error {
	if o.Status != StatusCreated {
		return ErrInvalidState
	}
	o.Status = StatusCancelled
	o.touch()
	return nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
