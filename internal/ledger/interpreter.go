package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gullak/internal/core"
)

// Response strings for malformed commands. Kept close to the chat surface:
// these are shown to the end user verbatim.
const (
	msgSetBudgetUsage = "⚠️ Format error. Use: set budget <month> <category1> <amount1> ..."
	msgEditUsage      = "⚠️ Format error. Use: edit budget <month> <category> <amount>"
	msgDeleteUsage    = "⚠️ Format error. Use: delete budget <month> <category>"
	msgSpentUsage     = "⚠️ Format error. Use: spent <amount> on <category>"
	msgOweUsage       = "⚠️ Format: owe <person/description> <amount>"
	msgBillUsage      = "⚠️ Format: bill <description> <amount> due YYYY-MM-DD"
	msgUnknown        = "⚠️ Unknown command. Use 'set budget', 'edit budget', 'delete budget', 'spent', 'owe', 'bill', or 'summary [month]'."
)

// Interpreter parses one free-text command and applies it to the user's
// ledger. Every input-shape problem (bad syntax, bad amount, missing
// budget) is folded into the returned text; Execute only returns a Go
// error for internal faults.
type Interpreter struct {
	store *Store

	// Now is the clock used for "current month" and timestamps.
	// Overridable in tests.
	Now func() time.Time
}

// NewInterpreter wires an interpreter to its ledger store.
func NewInterpreter(store *Store) *Interpreter {
	return &Interpreter{
		store: store,
		Now:   time.Now,
	}
}

// Execute dispatches a trimmed command line. Verb keywords match
// case-insensitively; month and category tokens are normalized; free-text
// descriptions keep the user's casing.
func (i *Interpreter) Execute(ctx context.Context, userID, command string) (string, error) {
	tokens := strings.Fields(strings.TrimSpace(command))

	var resp string
	err := i.store.Update(userID, func(l *core.Ledger) error {
		resp = i.dispatch(l, tokens)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("update ledger: %w", err)
	}

	slog.InfoContext(ctx, "Command executed",
		"component", "interpreter",
		"operation", verbOf(tokens),
		"user_id", userID)

	return resp, nil
}

// verbOf names the matched verb for logging, or "unknown".
func verbOf(tokens []string) string {
	if len(tokens) == 0 {
		return "unknown"
	}
	head := strings.ToLower(tokens[0])
	switch head {
	case "set", "edit", "delete":
		if len(tokens) > 1 && strings.EqualFold(tokens[1], "budget") {
			return head + " budget"
		}
	case "spent", "owe", "bill", "summary":
		return head
	}
	return "unknown"
}

func (i *Interpreter) dispatch(l *core.Ledger, tokens []string) string {
	switch verbOf(tokens) {
	case "set budget":
		return i.setBudget(l, tokens[2:])
	case "edit budget":
		return i.editBudget(l, tokens[2:])
	case "delete budget":
		return i.deleteBudget(l, tokens[2:])
	case "spent":
		return i.spent(l, tokens[1:])
	case "owe":
		return i.owe(l, tokens[1:])
	case "bill":
		return i.bill(l, tokens[1:])
	case "summary":
		return i.summary(l, tokens[1:])
	default:
		return msgUnknown
	}
}

// setBudget handles: set budget <month> <cat1> <amt1> [<cat2> <amt2> ...]
// All pairs are parsed before any is applied, so a bad amount anywhere
// leaves the ledger untouched.
func (i *Interpreter) setBudget(l *core.Ledger, args []string) string {
	if len(args) < 3 || (len(args)-1)%2 != 0 {
		return msgSetBudgetUsage
	}
	month := core.Normalize(args[0])

	type pair struct {
		category string
		amount   core.Money
	}
	pairs := make([]pair, 0, (len(args)-1)/2)
	for n := 1; n < len(args); n += 2 {
		amt, err := core.ParseAmount(args[n+1])
		if err != nil {
			return fmt.Sprintf("⚠️ Invalid amount: %s", args[n+1])
		}
		pairs = append(pairs, pair{category: core.Normalize(args[n]), amount: amt})
	}
	for _, p := range pairs {
		l.SetBudget(month, p.category, p.amount)
	}

	cats := sortedCategories(l.Budgets[month])
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, fmt.Sprintf("%s %s", c, l.Budgets[month][c]))
	}
	return fmt.Sprintf("✅ Budget set for %s: %s", month, strings.Join(parts, ", "))
}

// editBudget handles: edit budget <month> <category> <amount>
func (i *Interpreter) editBudget(l *core.Ledger, args []string) string {
	if len(args) != 3 {
		return msgEditUsage
	}
	month := core.Normalize(args[0])
	category := core.Normalize(args[1])
	amt, err := core.ParseAmount(args[2])
	if err != nil {
		return fmt.Sprintf("⚠️ Invalid amount: %s", args[2])
	}
	if _, ok := l.Budget(month, category); !ok {
		return fmt.Sprintf("⚠️ No budget found for %s in %s.", category, month)
	}
	l.SetBudget(month, category, amt)
	return fmt.Sprintf("✅ Budget updated for %s in %s: %s.", category, month, amt)
}

// deleteBudget handles: delete budget <month> <category>
func (i *Interpreter) deleteBudget(l *core.Ledger, args []string) string {
	if len(args) != 2 {
		return msgDeleteUsage
	}
	month := core.Normalize(args[0])
	category := core.Normalize(args[1])
	if !l.DeleteBudget(month, category) {
		return fmt.Sprintf("⚠️ No budget found for %s in %s.", category, month)
	}
	return fmt.Sprintf("✅ Deleted budget for %s in %s.", category, month)
}

// spent handles: spent <amount> on <category...>
// The month is always the current calendar month; the category must be
// budgeted there before any spend is accepted.
func (i *Interpreter) spent(l *core.Ledger, args []string) string {
	if len(args) < 3 || !strings.EqualFold(args[1], "on") {
		return msgSpentUsage
	}
	amt, err := core.ParseAmount(args[0])
	if err != nil {
		return msgSpentUsage
	}
	category := core.Normalize(strings.Join(args[2:], " "))
	month := core.CurrentMonth(i.Now())

	budget, ok := l.Budget(month, category)
	if !ok {
		return fmt.Sprintf("⚠️ No budget found for %s in %s. Set it first using 'set budget %s <Category> <amount>'",
			category, month, month)
	}

	l.AddExpense(month, category, amt, i.Now().UTC())
	total := l.TotalSpent(month, category)

	if total.Cents > budget.Cents {
		over := core.Money{Cents: total.Cents - budget.Cents}
		return fmt.Sprintf("⚠️ You have exceeded your %s budget by %s. Total spent: %s.",
			category, over, total)
	}
	return fmt.Sprintf("✅ Recorded spending %s on %s. Total spent: %s / %s.",
		amt, category, total, budget)
}

// owe handles: owe <description...> <amount>
// The trailing token is the amount; everything before it is the free-text
// description, casing preserved.
func (i *Interpreter) owe(l *core.Ledger, args []string) string {
	if len(args) < 2 {
		return msgOweUsage
	}
	amt, err := core.ParseAmount(args[len(args)-1])
	if err != nil {
		return msgOweUsage
	}
	desc := strings.Join(args[:len(args)-1], " ")
	l.AddDebt(desc, amt, i.Now().UTC())
	return fmt.Sprintf("✅ Debt recorded: Owe %s %s.", desc, amt)
}

// bill handles: bill <description...> <amount> due YYYY-MM-DD
func (i *Interpreter) bill(l *core.Ledger, args []string) string {
	if len(args) < 4 || !strings.EqualFold(args[len(args)-2], "due") {
		return msgBillUsage
	}
	due, err := core.ParseDate(args[len(args)-1])
	if err != nil {
		return msgBillUsage
	}
	amt, err := core.ParseAmount(args[len(args)-3])
	if err != nil {
		return msgBillUsage
	}
	desc := strings.Join(args[:len(args)-3], " ")
	if desc == "" {
		return msgBillUsage
	}
	l.AddBill(desc, amt, due, i.Now().UTC())
	return fmt.Sprintf("✅ Bill recorded: %s %s, due %s.", desc, amt, due)
}

// summary handles: summary [month]
// Read-only: spend vs budget per category for the month (current month by
// default), then every debt/bill that carries a due date.
func (i *Interpreter) summary(l *core.Ledger, args []string) string {
	month := core.CurrentMonth(i.Now())
	if len(args) >= 1 {
		month = core.Normalize(args[0])
	}

	lines := []string{fmt.Sprintf("📊 Summary for %s:", month)}
	budgets := l.Budgets[month]
	if len(budgets) == 0 {
		lines = append(lines, "No budgets set for this month.")
	} else {
		for _, cat := range sortedCategories(budgets) {
			budget := budgets[cat]
			spent := l.TotalSpent(month, cat)
			lines = append(lines, fmt.Sprintf("- %s: Spent %s / Budget %s (%.0f%%)",
				cat, spent, budget, spent.PercentOf(budget)))
		}
	}

	if dated := l.Dated(); len(dated) > 0 {
		lines = append(lines, "", "🔔 Bills/Debts:")
		for _, d := range dated {
			lines = append(lines, fmt.Sprintf("- %s: %s %s due %s (paid: %v)",
				core.Normalize(string(d.Kind)), d.Description, d.Amount, d.DueDate, d.IsPaid))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedCategories(m map[string]core.Money) []string {
	cats := make([]string, 0, len(m))
	for c := range m {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
