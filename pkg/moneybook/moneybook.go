package moneybook

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Category taxonomies are closed sets and differ between income and expense.
var (
	ExpenseCategories = []string{"주거", "식비", "문화생활", "모임", "쇼핑", "기타"}
	IncomeCategories  = []string{"용돈", "근로소득", "이자소득", "정책지원금", "기타"}
)

var (
	ErrInvalidAmount       = errors.New("amount must contain digits only")
	ErrInvalidType         = errors.New("transaction type must be income or expense")
	ErrInvalidCategory     = errors.New("category does not belong to the transaction type")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Transaction is one income or expense record.
type Transaction struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Memo     string          `json:"memo"`
	Type     TransactionType `json:"type"`
}

// CategoryTotal is one slice of the per-category aggregation.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ParseAmount accepts digit-only input and rejects everything else,
// including signs and decimal points.
func ParseAmount(s string) (decimal.Decimal, error) {
	if !digitsOnly.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func (t TransactionType) valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func validCategory(txType TransactionType, category string) bool {
	var categories []string
	switch txType {
	case TypeIncome:
		categories = IncomeCategories
	case TypeExpense:
		categories = ExpenseCategories
	}
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
