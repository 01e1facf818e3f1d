package parsers

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
)

var (
	bbvaCompanyPattern = regexp.MustCompile(`(?i)(TECHNOLOGIES|SA DE CV)`)
	bbvaPeriodPattern  = regexp.MustCompile(`(?i)DEL\s+(\d{2}/\d{2}/\d{4})\s+AL\s+(\d{2}/\d{2}/\d{4})`)
	bbvaAccountPattern = regexp.MustCompile(`(?i)No\.\s*de\s*Cuenta\s+(\d{10})`)
	bbvaCLABEPattern   = regexp.MustCompile(`(?i)CLABE\s+(\d{18})`)
	bbvaRFCPattern     = regexp.MustCompile(`(?i)R\.F\.C\s+([A-Z]{3,4}\d{6}[A-Z0-9]{3})`)
	bbvaClientPattern  = regexp.MustCompile(`(?i)No\.\s*de\s*Cliente\s+(D\d{7})`)
	bbvaBranchPattern  = regexp.MustCompile(`(?i)SUCURSAL\s*:\s*(\d{4})`)

	bbvaMovementStart = []*regexp.Regexp{
		regexp.MustCompile(`(?i)DETALLE\s+DE\s+MOVIMIENTOS`),
		regexp.MustCompile(`(?i)FECHA\s+OPER\s+LIQ`),
	}
	bbvaMovementDate = regexp.MustCompile(`^\s*\d{2}/[A-Z]{3}`)
	bbvaStopPatterns = []string{
		"INFORMACION FINANCIERA", "INFORMACIÓN FINANCIERA", "ESTADO DE CUENTA",
		"PAGINA", "MAESTRA PYME", "DOMICILIO FISCAL", "MONEDA NACIONAL",
	}
	bbvaSeparatorLine = regexp.MustCompile(`^[\s\-=_]+$`)

	lineAmounts   = regexp.MustCompile(`([\d,]+\.\d{2})`)
	clabeInLine   = regexp.MustCompile(`\d{18}`)
	idInLine      = regexp.MustCompile(`[#\-][A-Z]*\d{7,}`)
	trailingInt   = regexp.MustCompile(`(\d{1,5})\s*$`)
	bbvaDateToken = regexp.MustCompile(`(\d{2}/[A-Z]{3})`)
)

// Amount sanity bounds used when picking the movement amount out of a line
// that may also carry running balances and folio numbers.
var (
	bbvaMaxAmount     = decimal.NewFromInt(1000000)
	bbvaBalanceCutoff = decimal.NewFromInt(500000)
	bbvaSmallCutoff   = decimal.NewFromInt(100)
	bbvaMinAmount     = decimal.RequireFromString("0.01")
	bbvaFallbackMax   = decimal.NewFromInt(10000)
)

// bbvaParser implements the StatementParser interface for BBVA business
// accounts (Maestra Pyme / Versátil Negocios).
type bbvaParser struct{}

// NewBBVAParser creates the BBVA business statement parser.
func NewBBVAParser() interfaces.StatementParser {
	return &bbvaParser{}
}

// Bank identifies the bank product this parser understands.
func (p *bbvaParser) Bank() entities.BankProduct {
	return entities.BankBBVAEmpresa
}

// ParseGeneralData extracts the statement header data from page text.
func (p *bbvaParser) ParseGeneralData(pages []string) (entities.Statement, error) {
	text := strings.Join(pages, "\n")
	stmt := entities.Statement{Bank: p.Bank()}

	for i, line := range strings.Split(text, "\n") {
		if i >= 30 {
			break
		}
		if bbvaCompanyPattern.MatchString(line) {
			stmt.CompanyName = strings.TrimSpace(line)
			break
		}
	}

	if m := bbvaPeriodPattern.FindStringSubmatch(text); m != nil {
		stmt.Period = "DEL " + m[1] + " AL " + m[2]
	}
	if m := bbvaAccountPattern.FindStringSubmatch(text); m != nil {
		stmt.AccountNumber = m[1]
	}
	if m := bbvaCLABEPattern.FindStringSubmatch(text); m != nil {
		stmt.CLABE = m[1]
	}
	if m := bbvaRFCPattern.FindStringSubmatch(text); m != nil {
		stmt.RFC = strings.ToUpper(m[1])
	}
	if m := bbvaClientPattern.FindStringSubmatch(text); m != nil {
		stmt.ClientNumber = m[1]
	}
	if m := bbvaBranchPattern.FindStringSubmatch(text); m != nil {
		stmt.Branch = m[1]
	}

	p.extractBehaviorSection(text, &stmt)

	if stmt.CompanyName == "" && stmt.AccountNumber == "" {
		return stmt, &errors.ParserError{
			Bank:    string(p.Bank()),
			Section: "header",
			Err:     errors.ErrInvalidInput,
		}
	}

	return stmt, nil
}

// extractBehaviorSection reads declared balances from the "Comportamiento"
// summary: each labeled row is followed within a few lines by its amount.
func (p *bbvaParser) extractBehaviorSection(text string, stmt *entities.Statement) {
	idx := strings.Index(strings.ToUpper(text), "COMPORTAMIENTO")
	if idx < 0 {
		return
	}

	lines := strings.Split(text[idx:], "\n")
	if len(lines) > 50 {
		lines = lines[:50]
	}

	find := func(window int, bounds func(decimal.Decimal) bool, match func(string) bool) decimal.Decimal {
		for i, line := range lines {
			if !match(strings.ToUpper(line)) {
				continue
			}
			for j := i + 1; j < len(lines) && j <= i+window; j++ {
				amount := ExtractAmount(lines[j])
				if amount.IsPositive() && bounds(amount) {
					return amount
				}
			}
			break
		}
		return decimal.Zero
	}

	balanceBounds := func(d decimal.Decimal) bool {
		return d.LessThan(decimal.NewFromInt(1000000000))
	}
	totalBounds := func(d decimal.Decimal) bool {
		return d.GreaterThan(decimal.NewFromInt(1000)) && d.LessThan(decimal.NewFromInt(10000000000))
	}

	stmt.OpeningBalance = find(3, balanceBounds, func(u string) bool {
		return strings.Contains(u, "SALDO") && strings.Contains(u, "LIQUIDACI") && strings.Contains(u, "INICIAL")
	})
	stmt.TotalDeposits = find(5, totalBounds, func(u string) bool {
		return strings.Contains(u, "DEP") && strings.Contains(u, "ABONO") && strings.Contains(u, "(+)")
	})
	stmt.TotalWithdrawals = find(5, totalBounds, func(u string) bool {
		return strings.Contains(u, "RETIRO") && strings.Contains(u, "CARGO") && strings.Contains(u, "(-)")
	})
	stmt.ClosingBalance = find(3, balanceBounds, func(u string) bool {
		return strings.Contains(u, "SALDO FINAL") && strings.Contains(u, "(+)")
	})
}

// ParseTransactions extracts the movement list.
func (p *bbvaParser) ParseTransactions(pages []string, _ decimal.Decimal) ([]entities.Transaction, error) {
	text := strings.Join(pages, "\n")

	section, err := p.movementSection(text)
	if err != nil {
		return nil, err
	}

	groups := p.groupMovementLines(strings.Split(section, "\n"))

	stmtYear := 0
	if start, _ := entities.ParsePeriod(text); !start.IsZero() {
		stmtYear = start.Year()
	}

	branch := ""
	if m := bbvaBranchPattern.FindStringSubmatch(text); m != nil {
		branch = m[1]
	}

	counter := make(map[string]int)
	txs := make([]entities.Transaction, 0, len(groups))
	for _, group := range groups {
		if tx := p.parseMovement(group, stmtYear, branch, counter); tx != nil {
			txs = append(txs, *tx)
		}
	}

	return txs, nil
}

func (p *bbvaParser) movementSection(text string) (string, error) {
	start := -1
	for _, pat := range bbvaMovementStart {
		if loc := pat.FindStringIndex(text); loc != nil {
			start = loc[0]
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

	section := text[start:]
	if end := strings.Index(section, "Total de Movimientos"); end >= 0 {
		section = section[:end]
	}
	return section, nil
}

// groupMovementLines splits the movement section into one line group per
// transaction: a date-prefixed line opens a group, continuation lines attach
// to it, page furniture closes it.
func (p *bbvaParser) groupMovementLines(lines []string) [][]string {
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
		upper := strings.ToUpper(line)

		if containsAny(upper, bbvaStopPatterns...) {
			flush()
			continue
		}
		if containsAny(upper, "FECHA", "OPER", "LIQ", "DESCRIPCION", "CARGOS", "ABONOS") &&
			strings.Contains(upper, "COD") {
			continue
		}
		if bbvaSeparatorLine.MatchString(line) {
			continue
		}

		if bbvaMovementDate.MatchString(upper) {
			flush()
			current = []string{line}
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	flush()

	return groups
}

func (p *bbvaParser) parseMovement(group []string, year int, branch string, counter map[string]int) *entities.Transaction {
	mainLine := group[0]

	dateToken := bbvaDateToken.FindString(strings.ToUpper(mainLine))
	if dateToken == "" {
		return nil
	}

	code := ExtractCode(mainLine)
	fullName := FullTransactionName(group, strings.TrimSpace(mainLine))
	beneficiary := ExtractBeneficiary(group, code)

	amount := p.extractMovementAmount(group)
	if amount == nil || !amount.IsPositive() {
		return nil
	}

	classification := ClassifyCode(code)
	if code == "" && strings.Contains(strings.ToUpper(fullName), "RECIBIDO") {
		classification = entities.ClassificationIncome
	}

	txType := TransactionType(code, fullName)

	return &entities.Transaction{
		Date:           NormalizeDate(dateToken, year),
		FullName:       fullName,
		ShortName:      SummarizedName(fullName, txType, beneficiary, counter),
		Type:           txType,
		Classification: classification,
		Counterparty:   beneficiary,
		Amount:         amount.Abs(),
		Reference:      ExtractReference(group),
		PaymentMethod:  PaymentMethod(code, fullName),
		Branch:         branch,
		Code:           code,
	}
}

// extractMovementAmount picks the movement amount out of a line group that
// can also carry running balances, CLABEs, and folio numbers. Amounts above
// the balance cutoff are treated as balances; a sub-100 value followed by a
// larger one usually means the first token was a quantity, not a price.
func (p *bbvaParser) extractMovementAmount(group []string) *decimal.Decimal {
	for _, line := range group {
		clean := strings.TrimSpace(line)

		if clabeInLine.MatchString(clean) || idInLine.MatchString(clean) {
			continue
		}

		matches := lineAmounts.FindAllString(clean, -1)
		if len(matches) > 0 {
			var parsed []decimal.Decimal
			for _, m := range matches {
				amount := ExtractAmount(m)
				if amount.GreaterThanOrEqual(bbvaMinAmount) && amount.LessThanOrEqual(bbvaMaxAmount) {
					parsed = append(parsed, amount)
				}
			}
			if len(parsed) == 0 {
				continue
			}

			var nonBalance []decimal.Decimal
			for _, a := range parsed {
				if a.LessThan(bbvaBalanceCutoff) {
					nonBalance = append(nonBalance, a)
				}
			}
			if len(nonBalance) == 0 {
				m := parsed[0]
				for _, a := range parsed[1:] {
					if a.LessThan(m) {
						m = a
					}
				}
				return &m
			}

			for i, a := range nonBalance {
				if a.LessThan(bbvaSmallCutoff) && i+1 < len(nonBalance) {
					next := nonBalance[i+1]
					if next.GreaterThanOrEqual(bbvaSmallCutoff) {
						return &next
					}
				}
			}

			m := nonBalance[0]
			for _, a := range nonBalance[1:] {
				if a.GreaterThan(m) {
					m = a
				}
			}
			return &m
		}

		if m := trailingInt.FindStringSubmatch(clean); m != nil {
			amount := ExtractAmount(m[1])
			if amount.GreaterThanOrEqual(bbvaMinAmount) && amount.LessThanOrEqual(bbvaFallbackMax) {
				return &amount
			}
		}
	}

	return nil
}
