// Package services contains stateless domain services shared by the use
// cases.
package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
)

// balanceTolerance is one centavo; declared and computed totals rarely agree
// to more precision than the statement prints.
var balanceTolerance = decimal.RequireFromString("0.01")

// balanceValidator implements the BalanceValidator interface.
type balanceValidator struct{}

// NewBalanceValidator creates the statement arithmetic validator.
func NewBalanceValidator() interfaces.BalanceValidator {
	return &balanceValidator{}
}

// Validate checks two things: that the totals computed from the extracted
// transactions match the declared ones, and that the declared closing balance
// equals opening + deposits - withdrawals. It never reports OK when either
// check failed.
func (v *balanceValidator) Validate(stmt entities.Statement, txs []entities.Transaction) entities.BalanceReport {
	report := entities.BalanceReport{Messages: []string{}}

	computedDeposits := decimal.Zero
	computedWithdrawals := decimal.Zero
	for _, tx := range txs {
		switch tx.Classification {
		case entities.ClassificationIncome:
			computedDeposits = computedDeposits.Add(tx.Amount)
		case entities.ClassificationExpense:
			computedWithdrawals = computedWithdrawals.Add(tx.Amount)
		}
	}

	depositsDiff := stmt.TotalDeposits.Sub(computedDeposits).Abs()
	withdrawalsDiff := stmt.TotalWithdrawals.Sub(computedWithdrawals).Abs()

	if depositsDiff.LessThanOrEqual(balanceTolerance) && withdrawalsDiff.LessThanOrEqual(balanceTolerance) {
		report.TotalsConsistent = true
		report.Messages = append(report.Messages, "✓ Validacion de Totales: OK.")
	} else {
		if depositsDiff.GreaterThan(balanceTolerance) {
			report.Messages = append(report.Messages, fmt.Sprintf(
				"✗ ERROR Totales Depositos: Declarado $%s, Calculado $%s, Diferencia $%s",
				stmt.TotalDeposits, computedDeposits, depositsDiff))
		}
		if withdrawalsDiff.GreaterThan(balanceTolerance) {
			report.Messages = append(report.Messages, fmt.Sprintf(
				"✗ ERROR Totales Retiros: Declarado $%s, Calculado $%s, Diferencia $%s",
				stmt.TotalWithdrawals, computedWithdrawals, withdrawalsDiff))
		}
	}

	expectedClosing := stmt.OpeningBalance.Add(stmt.TotalDeposits).Sub(stmt.TotalWithdrawals)
	balanceDiff := stmt.ClosingBalance.Sub(expectedClosing).Abs()

	if balanceDiff.LessThanOrEqual(balanceTolerance) {
		report.BalanceConsistent = true
		if report.TotalsConsistent {
			report.Messages = append(report.Messages, "✓ Validacion de Balance: OK.")
		} else {
			report.Messages = append(report.Messages,
				"⚠ Validacion de Balance: Formula correcta, pero totales no coinciden.")
		}
	} else {
		report.Messages = append(report.Messages, fmt.Sprintf(
			"✗ ERROR Balance: Saldo Final Declarado $%s, Calculado $%s, Diferencia $%s",
			stmt.ClosingBalance, expectedClosing, balanceDiff))
	}

	return report
}
