package parsers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ocr/domain/entities"
)

const inbursaSampleStatement = `BANCO INBURSA
CONTADORES ASOCIADOS DEL BAJIO SC
Cuenta: 12345678901
RFC: CAB980101H21
Del 1 Abr. 2025 al 30 Abr. 2025
SALDO ANTERIOR 10,000.00
ABONOS 5,000.00
CARGOS 3,000.00
SALDO ACTUAL 12,000.00

DETALLE DE MOVIMIENTOS
03 ABR 1234567 SPEI RECIBIDO DE TERCEROS 5,000.00 15,000.00
10 ABR COMISION MANEJO DE CUENTA 3,000.00 12,000.00
RESUMEN DEL CFDI
SELLO DIGITAL xxxxx
`

func TestInbursaParser_ParseGeneralData(t *testing.T) {
	parser := NewInbursaParser()

	stmt, err := parser.ParseGeneralData([]string{inbursaSampleStatement})
	require.NoError(t, err)

	assert.Equal(t, entities.BankInbursaEmpresa, stmt.Bank)
	assert.Equal(t, "CONTADORES ASOCIADOS DEL BAJIO SC", stmt.CompanyName)
	assert.Equal(t, "DEL 01/04/2025 AL 30/04/2025", stmt.Period)
	assert.Equal(t, "12345678901", stmt.AccountNumber)
	assert.Equal(t, "CAB980101H21", stmt.RFC)

	assert.True(t, stmt.OpeningBalance.Equal(decimal.RequireFromString("10000.00")))
	assert.True(t, stmt.TotalDeposits.Equal(decimal.RequireFromString("5000.00")))
	assert.True(t, stmt.TotalWithdrawals.Equal(decimal.RequireFromString("3000.00")))
	assert.True(t, stmt.ClosingBalance.Equal(decimal.RequireFromString("12000.00")))
}

func TestInbursaParser_ParseTransactions(t *testing.T) {
	parser := NewInbursaParser()

	opening := decimal.RequireFromString("10000.00")
	txs, err := parser.ParseTransactions([]string{inbursaSampleStatement}, opening)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	t.Run("deposit classified by balance arithmetic", func(t *testing.T) {
		tx := txs[0]
		assert.Equal(t, "03/04/2025", tx.Date)
		assert.Equal(t, entities.ClassificationIncome, tx.Classification)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("5000.00")))
		assert.Equal(t, "1234567", tx.Reference)
		assert.Equal(t, "SPEI", tx.PaymentMethod)
	})

	t.Run("fee classified by balance arithmetic", func(t *testing.T) {
		tx := txs[1]
		assert.Equal(t, "10/04/2025", tx.Date)
		assert.Equal(t, entities.ClassificationExpense, tx.Classification)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("3000.00")))
		assert.Equal(t, "Comisión", tx.Type)
	})

	t.Run("CFDI stamp block is ignored", func(t *testing.T) {
		for _, tx := range txs {
			assert.NotContains(t, tx.FullName, "SELLO")
		}
	})
}

func TestInbursaParser_RejoinsSplitDates(t *testing.T) {
	parser := NewInbursaParser()

	// The OCR layer sometimes splits a movement date across two lines, in
	// either order, and emits comma-run junk lines between rows.
	text := `CONTADORES ASOCIADOS DEL BAJIO SC
Cuenta: 12345678901
Del 1 Abr. 2025 al 30 Abr. 2025
SALDO ANTERIOR 10,000.00
DETALLE DE MOVIMIENTOS
01
ABR. 1234567 DEPOSITO SPEI RECIBIDO 5,000.00 15,000.00
,,,,
ABR.
10 COMISION MANEJO DE CUENTA 3,000.00 12,000.00
`

	opening := decimal.RequireFromString("10000.00")
	txs, err := parser.ParseTransactions([]string{text}, opening)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	t.Run("day above month", func(t *testing.T) {
		tx := txs[0]
		assert.Equal(t, "01/04/2025", tx.Date)
		assert.Equal(t, entities.ClassificationIncome, tx.Classification)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("5000.00")))
		assert.Equal(t, "1234567", tx.Reference)
	})

	t.Run("month above day", func(t *testing.T) {
		tx := txs[1]
		assert.Equal(t, "10/04/2025", tx.Date)
		assert.Equal(t, entities.ClassificationExpense, tx.Classification)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("3000.00")))
	})

	t.Run("comma runs never reach a movement", func(t *testing.T) {
		for _, tx := range txs {
			assert.NotContains(t, tx.FullName, ",,")
		}
	})
}

func TestInbursaParser_ClassifyFallsBackToKeywords(t *testing.T) {
	parser := NewInbursaParser()

	// No running balances printed; keywords must decide.
	text := `CONTADORES ASOCIADOS DEL BAJIO SC
Cuenta: 12345678901
DETALLE DE MOVIMIENTOS
03 ABR DEPOSITO EN EFECTIVO 2,500.00
05 ABR CARGO POR SERVICIO 300.00
`
	txs, err := parser.ParseTransactions([]string{text}, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, entities.ClassificationIncome, txs[0].Classification)
	assert.Equal(t, entities.ClassificationExpense, txs[1].Classification)
}
