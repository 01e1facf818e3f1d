package parsers

import (
	"strings"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
)

// DetectBank identifies the issuing bank by scanning the statement text for
// bank name mentions. BBVA wins ties since its header repeats the brand on
// every page.
func DetectBank(pages []string) entities.BankProduct {
	text := strings.ToLower(strings.Join(pages, "\n"))

	switch {
	case strings.Contains(text, "bbva"):
		return entities.BankBBVAEmpresa
	case strings.Contains(text, "inbursa"):
		return entities.BankInbursaEmpresa
	case strings.Contains(text, "banamex"):
		return entities.BankBanamexEmpresa
	default:
		return entities.BankUnknown
	}
}

// Registry resolves the parser for a detected bank product.
type Registry struct {
	parsers map[entities.BankProduct]interfaces.StatementParser
}

// NewRegistry creates a registry with all supported bank parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[entities.BankProduct]interfaces.StatementParser)}
	for _, p := range []interfaces.StatementParser{
		NewBBVAParser(),
		NewBanamexParser(),
		NewInbursaParser(),
	} {
		r.parsers[p.Bank()] = p
	}
	return r
}

// ForBank returns the parser for a bank product, or ErrUnknownBank when no
// parser supports it.
func (r *Registry) ForBank(bank entities.BankProduct) (interfaces.StatementParser, error) {
	p, ok := r.parsers[bank]
	if !ok {
		return nil, errors.NewDomainError(errors.ErrUnknownBank, string(bank)).
			WithDetails("bank", string(bank))
	}
	return p, nil
}

// ForText detects the bank in the page text and returns its parser.
func (r *Registry) ForText(pages []string) (interfaces.StatementParser, error) {
	return r.ForBank(DetectBank(pages))
}
