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
	inbursaCompanyPattern = regexp.MustCompile(`(?i)(S\.?C\.?\b|S\.?A\.?\b|LTD|INC|ASOCIACION|GRUPO|CONTADORES)`)
	inbursaAccountPattern = regexp.MustCompile(`(?:Cuenta|CUENTA|Contrato)[\s.:]+(\d{10,12})`)
	inbursaRFCPattern     = regexp.MustCompile(`(?i)RFC[:\s]+([A-Z&Ñ]{3,4}\d{6}[A-Z0-9]{3})`)
	inbursaPeriodPattern  = regexp.MustCompile(`(?i)Del\s+(\d{1,2})\s+([A-Za-z]{3})\.?\s+(\d{4})\s+al\s+(\d{1,2})\s+([A-Za-z]{3})\.?\s+(\d{4})`)

	inbursaOpeningPattern     = regexp.MustCompile(`(?is)(?:SALDO ANTERIOR|Saldo Inicial).*?([\d,]+\.\d{2})`)
	inbursaDepositsPattern    = regexp.MustCompile(`(?is)(?:ABONOS|Dep[oó]sitos).*?([\d,]+\.\d{2})`)
	inbursaWithdrawalsPattern = regexp.MustCompile(`(?is)(?:CARGOS|Retiros).*?([\d,]+\.\d{2})`)
	inbursaClosingPattern     = regexp.MustCompile(`(?is)(?:SALDO ACTUAL|Saldo Final).*?([\d,]+\.\d{2})`)
	inbursaAveragePattern     = regexp.MustCompile(`(?is)SALDO\s+PROMEDIO.*?([\d,]+\.\d{2})`)

	inbursaMovementDate = regexp.MustCompile(`(?i)^\s*(\d{1,2})\s+([A-Za-z]{3})\.?\b`)
	inbursaLeadingRef   = regexp.MustCompile(`^(\d{5,20})\s`)
	inbursaInlineRef    = regexp.MustCompile(`\b(BNET\w+|REF\s*\d+|FOLIO\s*\d+)`)

	// The OCR layer sometimes emits a movement date split across two lines,
	// in either order. Both halves are rejoined before grouping.
	inbursaSplitMonthDay = regexp.MustCompile(`\b([A-Za-z]{3}\.?)\s*\n+\s*(\d{1,2})\b`)
	inbursaSplitDayMonth = regexp.MustCompile(`\b(\d{1,2})\s*\n+\s*([A-Za-z]{3}\.?)`)
	inbursaCommaRun      = regexp.MustCompile(`^,+$`)
)

// inbursaMovementStarts and inbursaMovementStops delimit the movement table;
// the stops keep CFDI stamp blocks out of the parse.
var (
	inbursaMovementStarts = []string{
		"DETALLE DE MOVIMIENTOS", "MOVIMIENTOS DEL PERIODO", "FECHA REFERENCIA CONCEPTO",
	}
	inbursaMovementStops = []string{
		"RESUMEN DEL CFDI", "TIMBRE FISCAL", "SELLO DIGITAL",
		"CADENA ORIGINAL", "GLOSARIO DE ABREVIATURAS",
	}
)

// inbursaBalanceTolerance bounds the running-balance check that decides
// whether a movement was a charge or a deposit.
var inbursaBalanceTolerance = decimal.NewFromInt(1)

// inbursaParser implements the StatementParser interface for Inbursa business
// accounts. Inbursa prints a running balance after each movement, so the
// parser classifies by arithmetic and only falls back to keywords.
type inbursaParser struct{}

// NewInbursaParser creates the Inbursa business statement parser.
func NewInbursaParser() interfaces.StatementParser {
	return &inbursaParser{}
}

func (p *inbursaParser) Bank() entities.BankProduct {
	return entities.BankInbursaEmpresa
}

// ParseGeneralData extracts the statement header data.
func (p *inbursaParser) ParseGeneralData(pages []string) (entities.Statement, error) {
	text := p.normalizeText(strings.Join(pages, "\n"))
	stmt := entities.Statement{Bank: p.Bank()}

	for i, line := range strings.Split(text, "\n") {
		if i >= 50 {
			break
		}
		clean := strings.TrimSpace(line)
		if !inbursaCompanyPattern.MatchString(clean) {
			continue
		}
		upper := strings.ToUpper(clean)
		if containsAny(upper, "INBURSA", "BANCO", "RESUMEN", "SALDOS", "ESTADO DE CUENTA") {
			continue
		}
		stmt.CompanyName = clean
		break
	}

	if m := inbursaAccountPattern.FindStringSubmatch(text); m != nil {
		stmt.AccountNumber = m[1]
	}
	if m := inbursaRFCPattern.FindStringSubmatch(text); m != nil {
		stmt.RFC = strings.ToUpper(m[1])
	}
	if m := inbursaPeriodPattern.FindStringSubmatch(text); m != nil {
		sm := spanishMonthDigits(m[2])
		em := spanishMonthDigits(m[5])
		if sm != "" && em != "" {
			stmt.Period = fmt.Sprintf("DEL %s/%s/%s AL %s/%s/%s",
				padDay(m[1]), sm, m[3], padDay(m[4]), em, m[6])
		}
	}

	if m := inbursaOpeningPattern.FindStringSubmatch(text); m != nil {
		stmt.OpeningBalance = ExtractAmount(m[1])
	}
	if m := inbursaDepositsPattern.FindStringSubmatch(text); m != nil {
		stmt.TotalDeposits = ExtractAmount(m[1])
	}
	if m := inbursaWithdrawalsPattern.FindStringSubmatch(text); m != nil {
		stmt.TotalWithdrawals = ExtractAmount(m[1])
	}
	if m := inbursaClosingPattern.FindStringSubmatch(text); m != nil {
		stmt.ClosingBalance = ExtractAmount(m[1])
	}
	if m := inbursaAveragePattern.FindStringSubmatch(text); m != nil {
		stmt.AverageBalance = ExtractAmount(m[1])
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

// ParseTransactions extracts the movement list, carrying the running balance
// forward to classify each movement.
func (p *inbursaParser) ParseTransactions(pages []string, openingBalance decimal.Decimal) ([]entities.Transaction, error) {
	text := p.normalizeText(strings.Join(pages, "\n"))

	section, err := p.movementSection(text)
	if err != nil {
		return nil, err
	}

	year := 0
	if m := inbursaPeriodPattern.FindStringSubmatch(text); m != nil {
		year, _ = strconv.Atoi(m[3])
	}

	groups := p.groupMovementLines(strings.Split(section, "\n"))

	counter := make(map[string]int)
	running := openingBalance
	txs := make([]entities.Transaction, 0, len(groups))
	for _, group := range groups {
		tx, nextBalance := p.parseMovement(group, year, running, counter)
		if tx != nil {
			txs = append(txs, *tx)
			running = nextBalance
		}
	}

	return txs, nil
}

// normalizeText rejoins split dates and drops junk lines that would break
// movement grouping.
func (p *inbursaParser) normalizeText(text string) string {
	text = inbursaSplitMonthDay.ReplaceAllString(text, "$2 $1")
	text = inbursaSplitDayMonth.ReplaceAllString(text, "$1 $2")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" || inbursaCommaRun.MatchString(clean) {
			continue
		}
		if strings.Contains(clean, "The following table") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *inbursaParser) movementSection(text string) (string, error) {
	upper := strings.ToUpper(text)

	start := -1
	for _, key := range inbursaMovementStarts {
		if idx := strings.Index(upper, key); idx >= 0 {
			start = idx
			break
		}
	}
	if start < 0 {
		return "", &errors.ParserError{
			Bank:    string(p.Bank()),
			Section: "movements",
			Err:     errors.ErrNotFound,
		}
	}

	end := len(text)
	for _, word := range inbursaMovementStops {
		if idx := strings.Index(upper[start:], word); idx >= 0 && start+idx < end {
			end = start + idx
		}
	}

	return text[start:end], nil
}

func (p *inbursaParser) groupMovementLines(lines []string) [][]string {
	var groups [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if inbursaMovementDate.MatchString(line) {
			flush()
			current = []string{line}
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	flush()

	return groups
}

// parseMovement builds one transaction from a line group. It returns the
// running balance after the movement so the caller can feed the next one.
func (p *inbursaParser) parseMovement(
	group []string,
	year int,
	previousBalance decimal.Decimal,
	counter map[string]int,
) (*entities.Transaction, decimal.Decimal) {
	block := strings.Join(group, " ")

	// Carried-over balance rows are not movements.
	if strings.Contains(strings.ToUpper(block), "BALANCE INICIAL") && len(group) < 3 {
		return nil, previousBalance
	}

	m := inbursaMovementDate.FindStringSubmatch(group[0])
	if m == nil {
		return nil, previousBalance
	}
	month := spanishMonthDigits(m[2])
	if month == "" {
		return nil, previousBalance
	}
	date := fmt.Sprintf("%s/%s/%04d", padDay(m[1]), month, year)

	amounts := lineAmounts.FindAllString(block, -1)
	if len(amounts) == 0 {
		return nil, previousBalance
	}

	// Row layout is [amount] ...concept... [balance after movement].
	amount := ExtractAmount(amounts[0])
	balanceAfter := decimal.Zero
	if len(amounts) >= 2 {
		amount = ExtractAmount(amounts[len(amounts)-2])
		balanceAfter = ExtractAmount(amounts[len(amounts)-1])
	}
	if !amount.IsPositive() {
		return nil, previousBalance
	}

	isCharge := p.classify(block, amount, previousBalance, balanceAfter)

	// The date match stops before the month's trailing dot; drop it.
	desc := strings.TrimLeft(block[len(m[0]):], ". ")
	for _, a := range amounts {
		desc = strings.Replace(desc, a, "", 1)
	}
	desc = strings.TrimSpace(spaceRuns.ReplaceAllString(desc, " "))

	reference := ""
	if rm := inbursaLeadingRef.FindStringSubmatch(desc); rm != nil {
		reference = rm[1]
		desc = strings.TrimSpace(desc[len(rm[0]):])
	} else if rm := inbursaInlineRef.FindStringSubmatch(desc); rm != nil {
		reference = rm[1]
	}

	classification := entities.ClassificationIncome
	if isCharge {
		classification = entities.ClassificationExpense
	}

	txType := inbursaTransactionType(desc)
	beneficiary := ExtractBeneficiary(group, "")

	nextBalance := balanceAfter
	if !nextBalance.IsPositive() {
		if isCharge {
			nextBalance = previousBalance.Sub(amount)
		} else {
			nextBalance = previousBalance.Add(amount)
		}
	}

	tx := &entities.Transaction{
		Date:           date,
		FullName:       desc,
		ShortName:      SummarizedName(desc, txType, beneficiary, counter),
		Type:           txType,
		Classification: classification,
		Counterparty:   beneficiary,
		Amount:         amount,
		Reference:      reference,
		PaymentMethod:  PaymentMethod("", desc),
	}

	return tx, nextBalance
}

// classify decides charge versus deposit by checking which direction makes
// the running balance line up. Keyword matching is the fallback when the
// arithmetic is inconclusive.
func (p *inbursaParser) classify(block string, amount, previous, after decimal.Decimal) bool {
	if previous.IsPositive() && after.IsPositive() {
		chargeDiff := previous.Sub(amount).Sub(after).Abs()
		depositDiff := previous.Add(amount).Sub(after).Abs()

		if chargeDiff.LessThan(inbursaBalanceTolerance) {
			return true
		}
		if depositDiff.LessThan(inbursaBalanceTolerance) {
			return false
		}
	}

	upper := strings.ToUpper(block)
	if containsAny(upper, "DEPOSITO", "ABONO", "RECEPCION", "INTERESES GANADOS", "TRASPASO DE TERCEROS") {
		return false
	}
	return true
}

func inbursaTransactionType(desc string) string {
	d := strings.ToUpper(desc)
	switch {
	case strings.Contains(d, "SPEI") || strings.Contains(d, "TRASPASO"):
		return "Transferencia"
	case strings.Contains(d, "DEPOSITO"):
		return "Depósito"
	case strings.Contains(d, "CHEQUE"):
		return "Cheque"
	case strings.Contains(d, "COMISION") || strings.Contains(d, "MANEJO DE CUENTA"):
		return "Comisión"
	case strings.Contains(d, "IVA") || strings.Contains(d, "ISR"):
		return "Impuesto"
	case strings.Contains(d, "INTERES"):
		return "Rendimiento"
	default:
		return "Otro"
	}
}
