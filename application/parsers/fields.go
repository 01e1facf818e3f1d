// Package parsers contains the bank-specific statement parsers and the field
// extraction helpers they share. Input is page text produced elsewhere in the
// pipeline; no recognition happens here.
package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"statement-ocr/domain/entities"
)

var (
	amountPattern    = regexp.MustCompile(`\d+(?:\.\d{2})?`)
	movementDate     = regexp.MustCompile(`^(\d{2})/([A-Z]{3})`)
	normalizedDate   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	refPattern       = regexp.MustCompile(`(?i)Ref\.\s+([A-Z0-9*#]+)\b`)
	authPattern      = regexp.MustCompile(`(?i)AUT[:\s]+(\d{6,})`)
	bnetPattern      = regexp.MustCompile(`\b(BNET[A-Z0-9]{10,})\b`)
	refbntcPattern   = regexp.MustCompile(`\b(REFBNTC[A-Z0-9]{8,})\b`)
	bareFolioPattern = regexp.MustCompile(`^\s*(\d{8,15})\s*$`)
	refDigitsPattern = regexp.MustCompile(`Ref\.\s+(\d+)\b`)
	upperNamePattern = regexp.MustCompile(`^[A-Z\s.]+$`)
	bankCodePattern  = regexp.MustCompile(`\b([A-Z]\d{2,3})\b`)
)

// chargeCodes are the movement codes booked as withdrawals; creditCodes as
// deposits. Unknown codes default to withdrawals, matching upstream behavior.
var chargeCodes = map[string]bool{
	"T17": true, // SPEI sent
	"A15": true, // card purchase
	"A16": true, // card replacement
	"A17": true, // card replacement VAT
	"G30": true, // utility charge
	"S39": true, // online banking fee
	"S40": true, // fee VAT
	"P14": true, // tax payment
	"N06": true,
	"A01": true, // ATM withdrawal
	"E62": true,
}

var creditCodes = map[string]bool{
	"T20": true, // SPEI received
	"W02": true, // third-party deposit
	"T22": true, // SPEI returned
	"E57": true,
	"Y45": true,
	"F04": true, // investment fund sale
}

// beneficiaryStopWords are tokens that disqualify a line from being a
// counterparty name.
var beneficiaryStopWords = []string{
	"BBVA", "BNET", "REF", "SPEI", "RFC", "AUT", "CUENTA", "PAGO",
	"ESTADO DE CUENTA", "INFORMACION", "TECNOLOGIAS", "INNOVATION",
	"SA DE CV", "BMRCASH", "PRESTAMO", "FECHA", "SALDO", "OPER", "LIQ",
	"COD. DESCRIPCION", "REFERENCIA", "CARGOS", "ABONOS",
}

// ExtractAmount parses a money string like "$1,234.55" into a decimal.
// Anything unparseable yields zero.
func ExtractAmount(text string) decimal.Decimal {
	clean := strings.NewReplacer(",", "", "$", "", "-", "").Replace(text)
	m := amountPattern.FindString(strings.TrimSpace(clean))
	if m == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// NormalizeDate converts a "DD/MMM" movement date to "DD/MM/YYYY" using the
// statement period's year. Dates already normalized pass through.
func NormalizeDate(raw string, year int) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))

	if normalizedDate.MatchString(raw) {
		return raw[:10]
	}

	m := movementDate.FindStringSubmatch(raw)
	if m == nil {
		return fmt.Sprintf("01/01/%04d", year)
	}
	month, ok := entities.SpanishMonthNumber[m[2]]
	if !ok {
		month = 1
	}
	return fmt.Sprintf("%s/%02d/%04d", m[1], int(month), year)
}

// ExtractCode finds the movement code (letter + two or three digits) on the
// group's main line.
func ExtractCode(mainLine string) string {
	m := bankCodePattern.FindStringSubmatch(strings.ToUpper(mainLine))
	if m == nil {
		return ""
	}
	return m[1]
}

// IsChargeCode reports whether the code books as a withdrawal. Unknown codes
// are treated as withdrawals.
func IsChargeCode(code string) bool {
	if chargeCodes[code] {
		return true
	}
	if creditCodes[code] {
		return false
	}
	return true
}

// ClassifyCode maps a movement code to its classification.
func ClassifyCode(code string) entities.Classification {
	if IsChargeCode(code) {
		return entities.ClassificationExpense
	}
	return entities.ClassificationIncome
}

// PaymentMethod derives the payment method from code and description.
func PaymentMethod(code, description string) string {
	desc := strings.ToUpper(description)

	switch {
	case code == "T17" || code == "T20" || code == "T22" || strings.Contains(desc, "SPEI"):
		return "SPEI"
	case code == "N06":
		return "Transferencia"
	case code == "W02":
		return "Efectivo"
	case code == "A15" || code == "A16" || code == "A17" || strings.Contains(desc, "TARJETA"):
		return "Tarjeta"
	case code == "A01":
		return "Retiro Cajero"
	case code == "S39" || code == "S40":
		return "Cargo bancario"
	case code == "P14":
		return "Pago de impuestos"
	case strings.Contains(desc, "CHEQUE"):
		return "Cheque"
	default:
		return "Otro"
	}
}

// TransactionType buckets a movement for the summarized name.
func TransactionType(code, description string) string {
	desc := strings.ToUpper(description)

	switch {
	case strings.Contains(desc, "SPEI"):
		return "Transferencia"
	case code == "W02" || strings.Contains(desc, "DEPOSITO"):
		return "Depósito"
	case code == "A15" || strings.Contains(desc, "TARJETA"):
		return "Tarjeta"
	case code == "S39" || code == "S40" || strings.Contains(desc, "COMISION"):
		return "Comisión"
	case code == "P14" || strings.Contains(desc, "SAT") || strings.Contains(desc, "ISR"):
		return "Impuesto"
	case code == "A01" || strings.Contains(desc, "RETIRO"):
		return "Retiro"
	case code == "G30" || strings.Contains(desc, "RECIBO"):
		return "Cargo"
	case code == "N06":
		return "Pago"
	default:
		return "Otro"
	}
}

// IsBeneficiaryLine reports whether a line looks like a standalone
// counterparty name (all caps, at least two words, no banking keywords).
func IsBeneficiaryLine(line string) bool {
	clean := strings.TrimSpace(line)
	if clean == "" || len(clean) <= 5 {
		return false
	}
	if !upperNamePattern.MatchString(clean) {
		return false
	}
	if len(strings.Fields(clean)) < 2 {
		return false
	}
	for _, kw := range beneficiaryStopWords {
		if strings.Contains(clean, kw) {
			return false
		}
	}
	return true
}

// ExtractBeneficiary finds the counterparty of a movement. Fee and tax codes
// resolve to the bank or the tax authority before any name lookup.
func ExtractBeneficiary(lines []string, code string) string {
	joined := strings.ToUpper(strings.Join(lines, " "))

	switch code {
	case "S39", "S40", "G30", "A16", "A17":
		return "BBVA"
	case "P14":
		return "SAT"
	}
	if strings.Contains(joined, "SAT") {
		return "SAT"
	}

	for _, line := range lines {
		if IsBeneficiaryLine(line) {
			return strings.TrimSpace(line)
		}
	}

	return ""
}

// ExtractReference pulls the numeric or alphanumeric reference out of a
// movement group, in decreasing order of specificity.
func ExtractReference(lines []string) string {
	joined := strings.Join(lines, " ")

	if m := refPattern.FindStringSubmatch(joined); m != nil && !strings.Contains(m[1], "******") {
		return m[1]
	}
	if m := authPattern.FindStringSubmatch(joined); m != nil {
		return m[1]
	}

	for _, line := range lines {
		if m := bnetPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
		if m := refbntcPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}

	// A long number alone on a continuation line is usually the folio.
	for _, line := range lines[min(1, len(lines)):] {
		if IsBeneficiaryLine(line) {
			continue
		}
		if m := bareFolioPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}

	if m := refDigitsPattern.FindStringSubmatch(joined); m != nil {
		return m[1]
	}

	return ""
}

// FullTransactionName concatenates the description with its continuation
// lines, skipping counterparty names and page furniture.
func FullTransactionName(lines []string, description string) string {
	parts := []string{strings.TrimSpace(description)}

	for _, line := range lines[min(1, len(lines)):] {
		clean := strings.TrimSpace(line)
		if IsBeneficiaryLine(clean) {
			continue
		}
		upper := strings.ToUpper(clean)
		if containsAny(upper, "ESTADO DE CUENTA", "PAGINA", "BBVA", "INFORMACION",
			"TOTAL DE MOVIMIENTOS", "MAESTRA PYME", "FECHA", "SALDO") {
			break
		}
		if len(clean) > 2 {
			parts = append(parts, clean)
		}
	}

	return strings.Join(parts, " ")
}

// SummarizedName builds the short human-readable movement label. The counter
// keeps repeated labels distinguishable within one statement.
func SummarizedName(fullName, txType, beneficiary string, counter map[string]int) string {
	short := beneficiary
	if len(short) > 25 {
		words := strings.Fields(short)
		if len(words) > 3 {
			words = words[:3]
		}
		short = strings.Join(words, " ")
	}

	key := txType + "_" + short
	counter[key]++
	n := counter[key]

	upper := strings.ToUpper(fullName)

	switch txType {
	case "Transferencia":
		switch {
		case strings.Contains(upper, "SPEI ENVIADO"):
			if short != "" {
				return "Transferencia SPEI a " + short
			}
			return "Transferencia SPEI a tercero"
		case strings.Contains(upper, "SPEI RECIBIDO"):
			if short != "" {
				return "Transferencia SPEI de " + short
			}
			return "Transferencia SPEI de tercero"
		case strings.Contains(upper, "SPEI DEVUELTO"):
			if short != "" {
				return "Devolución SPEI de " + short
			}
			return "Devolución SPEI"
		default:
			if short != "" {
				return "Transferencia a " + short
			}
			return "Transferencia"
		}
	case "Depósito":
		if short != "" {
			return "Depósito de " + short
		}
		return fmt.Sprintf("Depósito de tercero (%d/n)", n)
	case "Tarjeta":
		switch {
		case strings.Contains(upper, "GOOGLE"):
			return "Suscripción mensual GOOGLE GSUITE"
		case strings.Contains(upper, "GODADDY"):
			return fmt.Sprintf("Compra en línea GODADDY (%d/n)", n)
		case strings.Contains(upper, "MICROSOFT"):
			return "Compra en línea MICROSOFT"
		case strings.Contains(upper, "WIXCOM"):
			return fmt.Sprintf("Suscripción mensual WIXCOM (%d/n)", n)
		case strings.Contains(upper, "ADOBE"):
			return "Suscripción mensual ADOBE"
		case short != "":
			return "Compra en " + short
		default:
			return "Pago con tarjeta"
		}
	case "Comisión":
		if strings.Contains(upper, "IVA") {
			return "IVA de comisión servicio banca por internet"
		}
		return "Comisión por servicio de banca por internet"
	case "Impuesto":
		return "Pago de ISR"
	case "Retiro":
		return "Retiro cajero automático"
	case "Pago":
		if short != "" {
			return "Pago cuenta de tercero " + short
		}
		return "Pago cuenta de tercero"
	case "Cargo":
		return fmt.Sprintf("Cargo por recibo (%d/n)", n)
	default:
		label := strings.TrimSpace(txType + " " + short)
		if len(label) > 50 {
			label = label[:50]
		}
		return label
	}
}

var (
	dashRuns  = regexp.MustCompile(`-+`)
	spaceRuns = regexp.MustCompile(`\s+`)
)

// CleanCompanyName strips characters that cannot appear in file names.
func CleanCompanyName(name string) string {
	clean := name
	for _, c := range []string{"/", "\\", ":", "?", `"`, "<", ">", "|"} {
		clean = strings.ReplaceAll(clean, c, "-")
	}
	clean = dashRuns.ReplaceAllString(clean, "-")
	clean = spaceRuns.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
