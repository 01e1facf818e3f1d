package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"statement-ocr/domain/entities"
)

func tx(class entities.Classification, amount string) entities.Transaction {
	return entities.Transaction{
		Classification: class,
		Amount:         decimal.RequireFromString(amount),
	}
}

func TestBalanceValidator_Validate(t *testing.T) {
	validator := NewBalanceValidator()

	tests := []struct {
		name              string
		stmt              entities.Statement
		txs               []entities.Transaction
		totalsConsistent  bool
		balanceConsistent bool
		wantMessage       string
	}{
		{
			name: "everything consistent",
			stmt: entities.Statement{
				OpeningBalance:   decimal.RequireFromString("1000.00"),
				ClosingBalance:   decimal.RequireFromString("2100.00"),
				TotalDeposits:    decimal.RequireFromString("12500.00"),
				TotalWithdrawals: decimal.RequireFromString("11400.00"),
			},
			txs: []entities.Transaction{
				tx(entities.ClassificationIncome, "12500.00"),
				tx(entities.ClassificationExpense, "10000.00"),
				tx(entities.ClassificationExpense, "1400.00"),
			},
			totalsConsistent:  true,
			balanceConsistent: true,
			wantMessage:       "✓ Validacion de Balance: OK.",
		},
		{
			name: "within one centavo tolerance",
			stmt: entities.Statement{
				OpeningBalance:   decimal.RequireFromString("1000.00"),
				ClosingBalance:   decimal.RequireFromString("1500.00"),
				TotalDeposits:    decimal.RequireFromString("500.00"),
				TotalWithdrawals: decimal.Zero,
			},
			txs: []entities.Transaction{
				tx(entities.ClassificationIncome, "500.01"),
			},
			totalsConsistent:  true,
			balanceConsistent: true,
			wantMessage:       "✓ Validacion de Totales: OK.",
		},
		{
			name: "missing transaction breaks totals",
			stmt: entities.Statement{
				OpeningBalance:   decimal.RequireFromString("1000.00"),
				ClosingBalance:   decimal.RequireFromString("1500.00"),
				TotalDeposits:    decimal.RequireFromString("700.00"),
				TotalWithdrawals: decimal.RequireFromString("200.00"),
			},
			txs: []entities.Transaction{
				tx(entities.ClassificationIncome, "700.00"),
			},
			totalsConsistent:  false,
			balanceConsistent: true,
			wantMessage:       "⚠ Validacion de Balance: Formula correcta, pero totales no coinciden.",
		},
		{
			name: "declared closing balance is wrong",
			stmt: entities.Statement{
				OpeningBalance:   decimal.RequireFromString("1000.00"),
				ClosingBalance:   decimal.RequireFromString("9999.00"),
				TotalDeposits:    decimal.RequireFromString("700.00"),
				TotalWithdrawals: decimal.RequireFromString("200.00"),
			},
			txs: []entities.Transaction{
				tx(entities.ClassificationIncome, "700.00"),
				tx(entities.ClassificationExpense, "200.00"),
			},
			totalsConsistent:  true,
			balanceConsistent: false,
			wantMessage:       "✗ ERROR Balance: Saldo Final Declarado $9999, Calculado $1500, Diferencia $8499",
		},
		{
			name:              "empty statement with no transactions is trivially consistent",
			stmt:              entities.Statement{},
			txs:               nil,
			totalsConsistent:  true,
			balanceConsistent: true,
			wantMessage:       "✓ Validacion de Totales: OK.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validator.Validate(tt.stmt, tt.txs)

			assert.Equal(t, tt.totalsConsistent, report.TotalsConsistent)
			assert.Equal(t, tt.balanceConsistent, report.BalanceConsistent)
			assert.Contains(t, report.Messages, tt.wantMessage)
		})
	}
}

func TestBalanceValidator_ReportsBothTotalErrors(t *testing.T) {
	validator := NewBalanceValidator()

	stmt := entities.Statement{
		TotalDeposits:    decimal.RequireFromString("100.00"),
		TotalWithdrawals: decimal.RequireFromString("50.00"),
	}

	report := validator.Validate(stmt, nil)

	assert.False(t, report.TotalsConsistent)
	assert.Len(t, report.Messages, 3)
	assert.Contains(t, report.Messages[0], "ERROR Totales Depositos")
	assert.Contains(t, report.Messages[1], "ERROR Totales Retiros")
}
