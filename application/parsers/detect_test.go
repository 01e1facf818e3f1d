package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
)

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected entities.BankProduct
	}{
		{
			name:     "bbva",
			pages:    []string{"Estado de Cuenta", "BBVA Maestra Pyme"},
			expected: entities.BankBBVAEmpresa,
		},
		{
			name:     "bbva lowercase",
			pages:    []string{"estado de cuenta bbva bancomer"},
			expected: entities.BankBBVAEmpresa,
		},
		{
			name:     "inbursa",
			pages:    []string{"BANCO INBURSA S.A."},
			expected: entities.BankInbursaEmpresa,
		},
		{
			name:     "banamex",
			pages:    []string{"citibanamex ESTADO DE CUENTA"},
			expected: entities.BankBanamexEmpresa,
		},
		{
			name:     "unknown",
			pages:    []string{"BANCO DESCONOCIDO DEL NORTE"},
			expected: entities.BankUnknown,
		},
		{
			name:     "empty",
			pages:    nil,
			expected: entities.BankUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBank(tt.pages))
		})
	}
}

func TestRegistry_ForBank(t *testing.T) {
	registry := NewRegistry()

	t.Run("resolves every supported bank", func(t *testing.T) {
		for _, bank := range []entities.BankProduct{
			entities.BankBBVAEmpresa,
			entities.BankBanamexEmpresa,
			entities.BankInbursaEmpresa,
		} {
			parser, err := registry.ForBank(bank)
			require.NoError(t, err)
			assert.Equal(t, bank, parser.Bank())
		}
	})

	t.Run("unknown bank", func(t *testing.T) {
		_, err := registry.ForBank(entities.BankUnknown)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownBank)
	})
}

func TestRegistry_ForText(t *testing.T) {
	registry := NewRegistry()

	parser, err := registry.ForText([]string{"BBVA Estado de Cuenta"})
	require.NoError(t, err)
	assert.Equal(t, entities.BankBBVAEmpresa, parser.Bank())

	_, err = registry.ForText([]string{"texto sin banco"})
	require.Error(t, err)
}
