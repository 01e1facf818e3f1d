package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
)

var (
	banamexCompanyPattern = regexp.MustCompile(`(?i)(S\.?A\.?\s+DE\s+C\.?V\.?|S\.?C\.?\b|TECHNOLOGIES|SOLUCIONES)`)
	banamexPeriodPattern  = regexp.MustCompile(`(?i)(?:RESUMEN|PERIODO)\s*(?:DEL)?\s*(\d{1,2})\s+(?:DE\s+)?([A-ZÑ]{3,10})\s+(?:DE\s+)?(\d{4})?\s+AL\s+(\d{1,2})\s+(?:DE\s+)?([A-ZÑ]{3,10})\s+(?:DE\s+)?(\d{4})`)
	banamexCLABEPattern   = regexp.MustCompile(`(?i)CLABE[:\s]+(\d{18})`)
	banamexAccountPattern = regexp.MustCompile(`(?i)(?:Cuenta\s+de\s+Cheques|CUENTA)[:\s#]+(\d{7,12})`)
	banamexContractRef    = regexp.MustCompile(`(?i)CONTRATO[:\s]+(\d{10,12})`)
	banamexRFCPattern     = regexp.MustCompile(`(?i)RFC[:\s]+([A-Z&Ñ]{3,4}\d{6}[A-Z0-9]{3})`)
	banamexClientPattern  = regexp.MustCompile(`(?i)CLIENTE[:\s]+(\d{5,12})`)
	banamexBranchPattern  = regexp.MustCompile(`(?i)SUC(?:URSAL)?\.?\s+(\d{3,4})`)

	banamexOpeningPattern     = regexp.MustCompile(`(?is)SALDO\s+ANTERIOR.*?([\d,]+\.\d{2})`)
	banamexDepositsPattern    = regexp.MustCompile(`(?is)DEP[OÓ]SITOS.*?([\d,]+\.\d{2})`)
	banamexWithdrawalsPattern = regexp.MustCompile(`(?is)RETIROS.*?([\d,]+\.\d{2})`)
	banamexClosingPattern     = regexp.MustCompile(`(?is)SALDO\s+AL\s+.*?([\d,]+\.\d{2})`)

	banamexMovementDate = regexp.MustCompile(`^\s*(\d{1,2})\s+(ENE|FEB|MAR|ABR|MAY|JUN|JUL|AGO|SEP|OCT|NOV|DIC)\b`)
	banamexJunkLine     = regexp.MustCompile(`(?i)(citibanamex|P[aá]gina\s+\d+|CLIENTE[:\s]+\d+|ESTADO DE CUENTA)`)
)

// banamexCompanyExclusions disqualify a header line from being the company
// name even when it carries a corporate suffix.
var banamexCompanyExclusions = []string{
	"BANAMEX", "BANCO", "ESTADO DE CUENTA", "RESUMEN", "SUCURSAL", "PAGINA",
}

// banamexParser implements the StatementParser interface for Banamex business
// checking accounts.
type banamexParser struct{}

// NewBanamexParser creates the Banamex business statement parser.
func NewBanamexParser() interfaces.StatementParser {
	return &banamexParser{}
}

func (p *banamexParser) Bank() entities.BankProduct {
	return entities.BankBanamexEmpresa
}

// ParseGeneralData extracts the statement header. Declared balances come from
// the summary table near the top of the first page.
func (p *banamexParser) ParseGeneralData(pages []string) (entities.Statement, error) {
	text := strings.Join(pages, "\n")
	stmt := entities.Statement{Bank: p.Bank()}

	for i, line := range strings.Split(text, "\n") {
		if i >= 40 {
			break
		}
		clean := strings.TrimSpace(line)
		if !banamexCompanyPattern.MatchString(clean) {
			continue
		}
		if containsAny(strings.ToUpper(clean), banamexCompanyExclusions...) {
			continue
		}
		stmt.CompanyName = clean
		break
	}

	if m := banamexPeriodPattern.FindStringSubmatch(text); m != nil {
		stmt.Period = p.normalizePeriod(m)
	}
	if m := banamexCLABEPattern.FindStringSubmatch(text); m != nil {
		stmt.CLABE = m[1]
	}
	if m := banamexAccountPattern.FindStringSubmatch(text); m != nil {
		stmt.AccountNumber = m[1]
	} else if m := banamexContractRef.FindStringSubmatch(text); m != nil {
		stmt.AccountNumber = m[1]
	}
	if m := banamexRFCPattern.FindStringSubmatch(text); m != nil {
		stmt.RFC = strings.ToUpper(m[1])
	}
	if m := banamexClientPattern.FindStringSubmatch(text); m != nil {
		stmt.ClientNumber = m[1]
	}
	if m := banamexBranchPattern.FindStringSubmatch(text); m != nil {
		stmt.Branch = m[1]
	}

	// Summary amounts sit in the first stretch of the document; matching the
	// whole text would pick up movement rows instead.
	head := text
	if len(head) > 4000 {
		head = head[:4000]
	}
	if m := banamexOpeningPattern.FindStringSubmatch(head); m != nil {
		stmt.OpeningBalance = ExtractAmount(m[1])
	}
	if m := banamexDepositsPattern.FindStringSubmatch(head); m != nil {
		stmt.TotalDeposits = ExtractAmount(m[1])
	}
	if m := banamexWithdrawalsPattern.FindStringSubmatch(head); m != nil {
		stmt.TotalWithdrawals = ExtractAmount(m[1])
	}
	if m := banamexClosingPattern.FindStringSubmatch(head); m != nil {
		stmt.ClosingBalance = ExtractAmount(m[1])
	}

	if stmt.CompanyName == "" && stmt.AccountNumber == "" {
		return stmt, &errors.ParserError{
			Bank:    string(p.Bank()),
			Section: "header",
			Err:     errors.ErrInvalidInput,
		}
	}

	return stmt, nil
}

// normalizePeriod rewrites "RESUMEN DEL 1 ABRIL AL 30 ABRIL 2025" into the
// canonical "DEL dd/mm/yyyy AL dd/mm/yyyy" form.
func (p *banamexParser) normalizePeriod(m []string) string {
	startDay, startMonth, startYear := m[1], m[2], m[3]
	endDay, endMonth, endYear := m[4], m[5], m[6]

	if startYear == "" {
		startYear = endYear
	}

	sm := spanishMonthDigits(startMonth)
	em := spanishMonthDigits(endMonth)
	if sm == "" || em == "" {
		return ""
	}

	return fmt.Sprintf("DEL %s/%s/%s AL %s/%s/%s",
		padDay(startDay), sm, startYear, padDay(endDay), em, endYear)
}

func padDay(day string) string {
	if len(day) == 1 {
		return "0" + day
	}
	return day
}

func spanishMonthDigits(name string) string {
	abbrev := strings.ToUpper(name)
	if len(abbrev) > 3 {
		abbrev = abbrev[:3]
	}
	month, ok := entities.SpanishMonthNumber[abbrev]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d", int(month))
}

// ParseTransactions extracts the movement list. Movements open with a
// "d MMM" date; their amount is the second-to-last money token in the block,
// the last one being the running balance.
func (p *banamexParser) ParseTransactions(pages []string, _ decimal.Decimal) ([]entities.Transaction, error) {
	text := strings.Join(pages, "\n")

	idx := strings.Index(strings.ToUpper(text), "DETALLE DE OPERACIONES")
	if idx < 0 {
		idx = strings.Index(strings.ToUpper(text), "DETALLE DE MOVIMIENTOS")
	}
	if idx < 0 {
		return nil, &errors.ParserError{
			Bank:    string(p.Bank()),
			Section: "movements",
			Err:     errors.ErrNotFound,
		}
	}

	year := 0
	if m := banamexPeriodPattern.FindStringSubmatch(text); m != nil {
		year, _ = strconv.Atoi(m[6])
	}
	if year == 0 {
		if start, _ := entities.ParsePeriod(text); !start.IsZero() {
			year = start.Year()
		}
	}

	branch := ""
	if m := banamexBranchPattern.FindStringSubmatch(text); m != nil {
		branch = m[1]
	}

	groups := p.groupMovementLines(strings.Split(text[idx:], "\n"))

	counter := make(map[string]int)
	txs := make([]entities.Transaction, 0, len(groups))
	for _, group := range groups {
		if tx := p.parseMovement(group, year, branch, counter); tx != nil {
			txs = append(txs, *tx)
		}
	}

	return txs, nil
}

func (p *banamexParser) groupMovementLines(lines []string) [][]string {
	var groups [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" || banamexJunkLine.MatchString(line) {
			continue
		}
		upper := strings.ToUpper(line)
		if containsAny(upper, "SALDO MINIMO", "COMISIONES COBRADAS", "INVERSIONES", "GLOSARIO") {
			flush()
			break
		}

		if banamexMovementDate.MatchString(upper) {
			flush()
			current = []string{line}
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	flush()

	return groups
}

func (p *banamexParser) parseMovement(group []string, year int, branch string, counter map[string]int) *entities.Transaction {
	mainLine := strings.ToUpper(group[0])

	m := banamexMovementDate.FindStringSubmatch(mainLine)
	if m == nil {
		return nil
	}
	date := fmt.Sprintf("%s/%s/%04d", padDay(m[1]), spanishMonthDigits(m[2]), year)

	block := strings.Join(group, " ")
	amounts := lineAmounts.FindAllString(block, -1)
	if len(amounts) == 0 {
		return nil
	}

	// With two or more money tokens the last is the running balance and the
	// one before it is the movement amount.
	amountStr := amounts[0]
	if len(amounts) >= 2 {
		amountStr = amounts[len(amounts)-2]
	}
	amount := ExtractAmount(amountStr)
	if !amount.IsPositive() {
		return nil
	}

	desc := block
	for _, a := range amounts {
		desc = strings.Replace(desc, a, "", 1)
	}
	desc = spaceRuns.ReplaceAllString(desc[len(m[0]):], " ")
	desc = strings.TrimSpace(desc)

	classification := entities.ClassificationExpense
	if !banamexIsCharge(desc) {
		classification = entities.ClassificationIncome
	}

	txType := banamexTransactionType(desc)
	beneficiary := ExtractBeneficiary(group, "")
	txBranch := branch
	if bm := banamexBranchPattern.FindStringSubmatch(block); bm != nil {
		txBranch = bm[1]
	}

	return &entities.Transaction{
		Date:           date,
		FullName:       desc,
		ShortName:      SummarizedName(desc, txType, beneficiary, counter),
		Type:           txType,
		Classification: classification,
		Counterparty:   beneficiary,
		Amount:         amount,
		Reference:      ExtractReference(group),
		PaymentMethod:  banamexPaymentMethod(desc),
		Branch:         txBranch,
	}
}

// banamexIsCharge classifies a movement by its description. Deposits carry
// explicit keywords; everything ambiguous books as a withdrawal.
func banamexIsCharge(desc string) bool {
	d := strings.ToUpper(desc)
	if containsAny(d, "DEPOSITO", "ABONO", "PAGO RECIBIDO", "TRASPASO DE",
		"INTERESES GANADOS", "BONIFICACION", "DEVOLUCION DE") {
		return false
	}
	return true
}

func banamexTransactionType(desc string) string {
	d := strings.ToUpper(desc)
	switch {
	case strings.Contains(d, "IVA"):
		return "Impuesto"
	case strings.Contains(d, "COMISION"):
		return "Comisión"
	case strings.Contains(d, "INTERES"):
		return "Interés"
	case strings.Contains(d, "CHEQUE"):
		return "Cheque"
	case strings.Contains(d, "DEPOSITO"):
		return "Depósito"
	case strings.Contains(d, "PAGO"):
		return "Pago"
	default:
		return "Transferencia"
	}
}

func banamexPaymentMethod(desc string) string {
	d := strings.ToUpper(desc)
	switch {
	case strings.Contains(d, "CHEQUE"):
		return "Cheque"
	case strings.Contains(d, "EFECTIVO"):
		return "Efectivo"
	case strings.Contains(d, "SPEI"):
		return "SPEI"
	case strings.Contains(d, "DOMI"):
		return "Domiciliación"
	default:
		return "Transferencia Electrónica"
	}
}
