package domain

import "time"

// ExitState состояние транзакции выезда
type ExitState string

const (
	ExitSearching ExitState = "SEARCHING"
	ExitViewing   ExitState = "VIEWING"
	ExitExited    ExitState = "EXITED"
	ExitError     ExitState = "ERROR"
)

// ExitStep шаг, на котором транзакция ушла в ERROR
type ExitStep string

const (
	StepSearch ExitStep = "search"
	StepExit   ExitStep = "exit"
)

// ExitTransaction одна попытка выезда автомобиля: поиск, котировка, подтверждение
type ExitTransaction struct {
	ID           string
	State        ExitState
	Registration string

	Session  *ParkingSession
	Quote    *PricingQuote // Предварительная котировка (VIEWING)
	QuotedAt *time.Time    // Время выезда, на которое посчитана котировка
	Bill     *ExitBill

	Error      string
	FailedStep ExitStep

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone возвращает копию, которую можно менять без влияния на оригинал
func (t *ExitTransaction) Clone() *ExitTransaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.Session != nil {
		s := *t.Session
		c.Session = &s
	}
	if t.Quote != nil {
		q := *t.Quote
		c.Quote = &q
	}
	if t.QuotedAt != nil {
		at := *t.QuotedAt
		c.QuotedAt = &at
	}
	if t.Bill != nil {
		b := *t.Bill
		if t.Bill.Quote != nil {
			q := *t.Bill.Quote
			b.Quote = &q
		}
		c.Bill = &b
	}
	return &c
}

// ClearResults сбрасывает найденную сессию, котировку, счет и ошибку
func (t *ExitTransaction) ClearResults() {
	t.Session = nil
	t.Quote = nil
	t.QuotedAt = nil
	t.Bill = nil
	t.Error = ""
	t.FailedStep = ""
}
