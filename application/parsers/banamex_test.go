package parsers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ocr/domain/entities"
)

const banamexSampleStatement = `citibanamex
ESTADO DE CUENTA AL 30 DE ABRIL DE 2025
COMERCIALIZADORA DEL VALLE SA DE CV
RFC: CVA120505QX8
CLIENTE: 5544332
Cuenta de Cheques: 1234567
CLABE: 002180012345678901
RESUMEN DEL 1 ABRIL AL 30 ABRIL 2025
SALDO ANTERIOR 50,000.00
DEPOSITOS 20,000.00
RETIROS 15,000.00
SALDO AL 30 DE ABRIL 55,000.00

DETALLE DE OPERACIONES
FECHA CONCEPTO RETIROS DEPOSITOS SALDO
02 ABR DEPOSITO EFECTIVO SUC 0123 20,000.00 70,000.00
05 ABR PAGO INTERBANCARIO SPEI PROVEEDORA DEL CENTRO 15,000.00 55,000.00
SALDO MINIMO REQUERIDO
`

func TestBanamexParser_ParseGeneralData(t *testing.T) {
	parser := NewBanamexParser()

	stmt, err := parser.ParseGeneralData([]string{banamexSampleStatement})
	require.NoError(t, err)

	assert.Equal(t, entities.BankBanamexEmpresa, stmt.Bank)
	assert.Equal(t, "COMERCIALIZADORA DEL VALLE SA DE CV", stmt.CompanyName)
	assert.Equal(t, "DEL 01/04/2025 AL 30/04/2025", stmt.Period)
	assert.Equal(t, "1234567", stmt.AccountNumber)
	assert.Equal(t, "002180012345678901", stmt.CLABE)
	assert.Equal(t, "CVA120505QX8", stmt.RFC)
	assert.Equal(t, "5544332", stmt.ClientNumber)

	assert.True(t, stmt.OpeningBalance.Equal(decimal.RequireFromString("50000.00")))
	assert.True(t, stmt.TotalDeposits.Equal(decimal.RequireFromString("20000.00")))
	assert.True(t, stmt.TotalWithdrawals.Equal(decimal.RequireFromString("15000.00")))
	assert.True(t, stmt.ClosingBalance.Equal(decimal.RequireFromString("55000.00")))
}

func TestBanamexParser_ParseTransactions(t *testing.T) {
	parser := NewBanamexParser()

	txs, err := parser.ParseTransactions([]string{banamexSampleStatement}, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	t.Run("cash deposit", func(t *testing.T) {
		tx := txs[0]
		assert.Equal(t, "02/04/2025", tx.Date)
		assert.Equal(t, entities.ClassificationIncome, tx.Classification)
		// Last money token is the running balance, not the amount.
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("20000.00")))
		assert.Equal(t, "Depósito", tx.Type)
		assert.Equal(t, "Efectivo", tx.PaymentMethod)
		assert.Equal(t, "0123", tx.Branch)
	})

	t.Run("interbank payment", func(t *testing.T) {
		tx := txs[1]
		assert.Equal(t, "05/04/2025", tx.Date)
		assert.Equal(t, entities.ClassificationExpense, tx.Classification)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("15000.00")))
		assert.Equal(t, "SPEI", tx.PaymentMethod)
	})
}

func TestBanamexParser_ParseGeneralData_EmptyInput(t *testing.T) {
	parser := NewBanamexParser()

	_, err := parser.ParseGeneralData([]string{"pagina sin contenido util"})
	require.Error(t, err)
}
