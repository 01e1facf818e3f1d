// Package entities contains the core domain entities for the statement OCR toolkit.
// It defines structures for bank statements, transactions, and OCR model artifacts.
package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankProduct identifies the bank and account product a statement belongs to.
type BankProduct string

// Supported bank products.
const (
	BankBBVAEmpresa    BankProduct = "bbva_empresa"
	BankBanamexEmpresa BankProduct = "banamex_empresa"
	BankInbursaEmpresa BankProduct = "inbursa_empresa"
	BankUnknown        BankProduct = "desconocido"
)

// Classification splits transactions into money in and money out.
type Classification string

// Transaction classifications.
const (
	ClassificationIncome  Classification = "Ingreso"
	ClassificationExpense Classification = "Egreso"
)

// Statement holds the general data extracted from a bank statement header.
type Statement struct {
	ID            uint        `gorm:"primaryKey" json:"-"`
	Bank          BankProduct `gorm:"column:bank" json:"banco"`
	CompanyName   string      `gorm:"column:company_name" json:"nombre_empresa"`
	Period        string      `gorm:"column:period" json:"periodo"`
	AccountNumber string      `gorm:"column:account_number" json:"numero_cuenta"`
	CLABE         string      `gorm:"column:clabe" json:"numero_cuenta_clabe"`
	RFC           string      `gorm:"column:rfc" json:"rfc"`
	ClientNumber  string      `gorm:"column:client_number" json:"numero_cliente"`
	Branch        string      `gorm:"column:branch" json:"sucursal"`

	OpeningBalance   decimal.Decimal `gorm:"column:opening_balance;type:numeric" json:"saldo_inicial"`
	ClosingBalance   decimal.Decimal `gorm:"column:closing_balance;type:numeric" json:"saldo_final"`
	TotalDeposits    decimal.Decimal `gorm:"column:total_deposits;type:numeric" json:"total_depositos"`
	TotalWithdrawals decimal.Decimal `gorm:"column:total_withdrawals;type:numeric" json:"total_retiros"`
	AverageBalance   decimal.Decimal `gorm:"column:average_balance;type:numeric" json:"saldo_promedio"`

	Transactions []Transaction `gorm:"foreignKey:StatementID" json:"-"`
	CreatedAt    time.Time     `json:"-"`
}

// PeriodRange returns the statement period parsed into start and end dates.
// Both are zero when the period string was not recognized.
func (s Statement) PeriodRange() (time.Time, time.Time) {
	return ParsePeriod(s.Period)
}

// Transaction is a single statement movement.
type Transaction struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	StatementID uint `gorm:"index" json:"-"`

	Date           string          `gorm:"column:date" json:"fecha"`
	FullName       string          `gorm:"column:full_name" json:"nombre"`
	ShortName      string          `gorm:"column:short_name" json:"nombre_resumido"`
	Type           string          `gorm:"column:type" json:"tipo"`
	Classification Classification  `gorm:"column:classification" json:"clasificacion"`
	Counterparty   string          `gorm:"column:counterparty" json:"quien_pago"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric" json:"monto"`
	Reference      string          `gorm:"column:reference" json:"referencia"`
	Account        string          `gorm:"column:account" json:"cuenta"`
	PaymentMethod  string          `gorm:"column:payment_method" json:"metodo_pago"`
	Branch         string          `gorm:"column:branch" json:"sucursal"`
	Code           string          `gorm:"column:code" json:"-"`
}

// BalanceReport is the outcome of validating a statement's arithmetic.
type BalanceReport struct {
	BalanceConsistent bool     `json:"balance_coherente" yaml:"balance_coherente"`
	TotalsConsistent  bool     `json:"totales_coherentes" yaml:"totales_coherentes"`
	Messages          []string `json:"mensajes" yaml:"mensajes"`
}

// ExtractionResult bundles everything produced by one parse run.
type ExtractionResult struct {
	RunID        uuid.UUID     `json:"run_id"`
	Bank         BankProduct   `json:"banco"`
	Statement    Statement     `json:"datos_generales"`
	Transactions []Transaction `json:"transacciones"`
	Balance      BalanceReport `json:"validacion_balance"`
}

// Income returns the transactions classified as deposits.
func (r ExtractionResult) Income() []Transaction {
	return filterByClass(r.Transactions, ClassificationIncome)
}

// Expenses returns the transactions classified as withdrawals.
func (r ExtractionResult) Expenses() []Transaction {
	return filterByClass(r.Transactions, ClassificationExpense)
}

func filterByClass(txs []Transaction, class Classification) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Classification == class {
			out = append(out, tx)
		}
	}
	return out
}
