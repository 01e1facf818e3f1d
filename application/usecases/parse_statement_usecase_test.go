package usecases

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ocr/application/parsers"
	"statement-ocr/application/services"
	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
	"statement-ocr/test/helpers"
)

const sampleStatementText = `Estado de Cuenta
Maestra Pyme BBVA
ENDLESS TECHNOLOGIES SA DE CV
No. de Cuenta 0123456789
DEL 01/04/2025 AL 30/04/2025

COMPORTAMIENTO
Saldo de Liquidación Inicial
1,000.00
Depósitos / Abonos (+)
12,500.00
Retiros / Cargos (-)
11,400.00
Saldo Final (+)
2,100.00

DETALLE DE MOVIMIENTOS
02/ABR 02/ABR T20 SPEI RECIBIDO SANTANDER 12,500.00
03/ABR 03/ABR T17 SPEI ENVIADO BANORTE 10,000.00
15/ABR 15/ABR S39 COMISION BANCA POR INTERNET 1,200.00
16/ABR 16/ABR S40 IVA COMISION 200.00
Total de Movimientos 4
`

// fakeRepository records saved statements.
type fakeRepository struct {
	saved   []*entities.Statement
	saveErr error
}

func (r *fakeRepository) Save(_ context.Context, stmt *entities.Statement) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, stmt)
	return nil
}

func (r *fakeRepository) FindByAccount(context.Context, string) ([]entities.Statement, error) {
	return nil, nil
}

func writeTempStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newParseUseCase(repo interfaces.StatementRepository) interfaces.ParseStatementUseCase {
	return NewParseStatementUseCase(
		parsers.NewRegistry(),
		services.NewBalanceValidator(),
		repo,
		helpers.NewNopLogger(),
	)
}

func TestParseStatementUseCase_Execute(t *testing.T) {
	ctx := helpers.TestContext(t)

	uc := newParseUseCase(nil)
	input := writeTempStatement(t, sampleStatementText)

	result, err := uc.Execute(ctx, interfaces.ParseStatementParams{InputPath: input})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.RunID)
	assert.Equal(t, entities.BankBBVAEmpresa, result.Bank)
	assert.Equal(t, "ENDLESS TECHNOLOGIES SA DE CV", result.Statement.CompanyName)
	assert.Len(t, result.Transactions, 4)
	assert.Len(t, result.Income(), 1)
	assert.Len(t, result.Expenses(), 3)
	assert.True(t, result.Balance.TotalsConsistent)
	assert.True(t, result.Balance.BalanceConsistent)
}

func TestParseStatementUseCase_WritesResultFiles(t *testing.T) {
	ctx := helpers.TestContext(t)

	uc := newParseUseCase(nil)
	input := writeTempStatement(t, sampleStatementText)
	outputDir := t.TempDir()

	result, err := uc.Execute(ctx, interfaces.ParseStatementParams{
		InputPath:  input,
		OutputDir:  outputDir,
		WriteFiles: true,
	})
	require.NoError(t, err)

	base := "ENDLESS_TECHNOLOGIES_SA_DE_CV_01ABR2025_30ABR2025"
	for _, suffix := range []string{"DATOS", "INGRESOS", "EGRESOS"} {
		path := filepath.Join(outputDir, base+"_"+suffix+".json")
		data, err := os.ReadFile(path)
		require.NoError(t, err, "expected %s to exist", path)
		assert.True(t, json.Valid(data), "%s holds invalid JSON", path)
	}

	var incomes []entities.Transaction
	data, err := os.ReadFile(filepath.Join(outputDir, base+"_INGRESOS.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &incomes))
	require.Len(t, incomes, len(result.Income()))
	assert.Equal(t, entities.ClassificationIncome, incomes[0].Classification)
}

func TestParseStatementUseCase_PersistsWhenRepositoryConfigured(t *testing.T) {
	ctx := helpers.TestContext(t)

	repo := &fakeRepository{}
	uc := newParseUseCase(repo)
	input := writeTempStatement(t, sampleStatementText)

	_, err := uc.Execute(ctx, interfaces.ParseStatementParams{InputPath: input})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "0123456789", repo.saved[0].AccountNumber)
	assert.Len(t, repo.saved[0].Transactions, 4)
}

func TestParseStatementUseCase_PersistenceFailureIsNotFatal(t *testing.T) {
	ctx := helpers.TestContext(t)

	repo := &fakeRepository{saveErr: errors.ErrInternal}
	uc := newParseUseCase(repo)
	input := writeTempStatement(t, sampleStatementText)

	result, err := uc.Execute(ctx, interfaces.ParseStatementParams{InputPath: input})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestParseStatementUseCase_UnknownBank(t *testing.T) {
	ctx := helpers.TestContext(t)

	uc := newParseUseCase(nil)
	input := writeTempStatement(t, "estado de cuenta de un banco no soportado")

	_, err := uc.Execute(ctx, interfaces.ParseStatementParams{InputPath: input})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownBank)
}

func TestParseStatementUseCase_MissingInputFile(t *testing.T) {
	ctx := helpers.TestContext(t)

	uc := newParseUseCase(nil)

	_, err := uc.Execute(ctx, interfaces.ParseStatementParams{InputPath: "/no/such/file.txt"})
	require.Error(t, err)
}
