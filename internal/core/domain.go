package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	Debt RecordKind = "debt"
	Bill RecordKind = "bill"
)

type (
	// RecordKind distinguishes the two flavours of debts_bills entries.
	RecordKind string

	// Date wraps time.Time so an optional due date can be carried around
	// with a zero value meaning "absent" (debts have no due date).
	Date struct {
		time.Time
	}

	// Expense is one recorded spend against a budgeted (month, category).
	Expense struct {
		Month    string    `json:"month"`
		Category string    `json:"category"`
		Amount   Money     `json:"amount"`
		At       time.Time `json:"at"`
	}

	// DebtBill is an IOU or a dated bill. DueDate is set for bills only.
	DebtBill struct {
		Kind        RecordKind `json:"kind"`
		Description string     `json:"description"`
		Amount      Money      `json:"amount"`
		DueDate     Date       `json:"due_date"`
		IsPaid      bool       `json:"is_paid"`
		CreatedAt   time.Time  `json:"created_at"`
	}

	// Ledger is the full financial state of a single user: budget ceilings
	// keyed by month then category, the chronological expense log, and the
	// debts/bills list. It is mutated exclusively through the command
	// interpreter, always under the owning store's per-user lock.
	Ledger struct {
		Budgets    map[string]map[string]Money `json:"budgets"`
		Expenses   []Expense                   `json:"expenses"`
		DebtsBills []DebtBill                  `json:"debts_bills"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// NewLedger returns an empty ledger with all collections initialized.
func NewLedger() *Ledger {
	return &Ledger{
		Budgets:    make(map[string]map[string]Money),
		Expenses:   make([]Expense, 0),
		DebtsBills: make([]DebtBill, 0),
	}
}

// Normalize folds a month or category name to its canonical bucket form:
// the whole token lower-cased, then the first rune upper-cased. Applied on
// every write and read path so "groceries", "GROCERIES" and "Groceries"
// all land in the same bucket, including multi-word categories.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// CurrentMonth returns the English month name for now in UTC, e.g. "August".
func CurrentMonth(now time.Time) string {
	return now.UTC().Month().String()
}

// SetBudget creates or overwrites the ceiling for (month, category).
// Names must already be normalized by the caller.
func (l *Ledger) SetBudget(month, category string, amount Money) {
	if l.Budgets == nil {
		l.Budgets = make(map[string]map[string]Money)
	}
	if _, ok := l.Budgets[month]; !ok {
		l.Budgets[month] = make(map[string]Money)
	}
	l.Budgets[month][category] = amount
}

// Budget looks up the ceiling for (month, category).
func (l *Ledger) Budget(month, category string) (Money, bool) {
	cats, ok := l.Budgets[month]
	if !ok {
		return Money{}, false
	}
	amt, ok := cats[category]
	return amt, ok
}

// DeleteBudget removes the (month, category) entry. When the last category
// of a month goes away the month key is dropped too.
func (l *Ledger) DeleteBudget(month, category string) bool {
	cats, ok := l.Budgets[month]
	if !ok {
		return false
	}
	if _, ok := cats[category]; !ok {
		return false
	}
	delete(cats, category)
	if len(cats) == 0 {
		delete(l.Budgets, month)
	}
	return true
}

// AddExpense appends a spend event. Callers must have checked the budget
// precondition first; this method does not re-validate.
func (l *Ledger) AddExpense(month, category string, amount Money, at time.Time) {
	l.Expenses = append(l.Expenses, Expense{
		Month:    month,
		Category: category,
		Amount:   amount,
		At:       at,
	})
}

// TotalSpent sums all expenses recorded against (month, category).
func (l *Ledger) TotalSpent(month, category string) Money {
	var cents int64
	for _, e := range l.Expenses {
		if e.Month == month && e.Category == category {
			cents += e.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// AddDebt appends an open-ended IOU (no due date, unpaid).
func (l *Ledger) AddDebt(description string, amount Money, at time.Time) {
	l.DebtsBills = append(l.DebtsBills, DebtBill{
		Kind:        Debt,
		Description: description,
		Amount:      amount,
		CreatedAt:   at,
	})
}

// AddBill appends an unpaid bill with a due date.
func (l *Ledger) AddBill(description string, amount Money, due Date, at time.Time) {
	l.DebtsBills = append(l.DebtsBills, DebtBill{
		Kind:        Bill,
		Description: description,
		Amount:      amount,
		DueDate:     due,
		CreatedAt:   at,
	})
}

// Dated returns the debts/bills that carry a due date, in insertion order.
func (l *Ledger) Dated() []DebtBill {
	var out []DebtBill
	for _, d := range l.DebtsBills {
		if !d.DueDate.IsZero() {
			out = append(out, d)
		}
	}
	return out
}

// ParseDate parses a strict YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as "YYYY-MM-DD" or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts null or "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
