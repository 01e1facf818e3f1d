package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"statement-ocr/application/parsers"
	"statement-ocr/domain/entities"
	"statement-ocr/domain/interfaces"
)

// parseStatementUseCase implements the ParseStatementUseCase interface.
type parseStatementUseCase struct {
	registry   *parsers.Registry
	validator  interfaces.BalanceValidator
	repository interfaces.StatementRepository // nil when persistence is not configured
	logger     interfaces.Logger
}

// NewParseStatementUseCase creates a new statement parse use case. The
// repository may be nil; results are then not persisted.
func NewParseStatementUseCase(
	registry *parsers.Registry,
	validator interfaces.BalanceValidator,
	repository interfaces.StatementRepository,
	logger interfaces.Logger,
) interfaces.ParseStatementUseCase {
	return &parseStatementUseCase{
		registry:   registry,
		validator:  validator,
		repository: repository,
		logger:     logger,
	}
}

// Execute reads the statement text, detects the bank, runs its parser,
// validates the balance, and optionally writes the three result files.
func (uc *parseStatementUseCase) Execute(
	ctx context.Context,
	params interfaces.ParseStatementParams,
) (*entities.ExtractionResult, error) {
	raw, err := os.ReadFile(params.InputPath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read statement text %s", params.InputPath)
	}

	// Pages arrive separated by form feeds, one per statement page.
	pages := strings.Split(string(raw), "\f")

	parser, err := uc.registry.ForText(pages)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	uc.logger.Info("Parsing statement",
		"run_id", runID.String(),
		"bank", string(parser.Bank()),
		"input", params.InputPath,
		"pages", len(pages))

	stmt, err := parser.ParseGeneralData(pages)
	if err != nil {
		return nil, err
	}

	txs, err := parser.ParseTransactions(pages, stmt.OpeningBalance)
	if err != nil {
		return nil, err
	}

	report := uc.validator.Validate(stmt, txs)
	for _, msg := range report.Messages {
		uc.logger.Info(msg, "run_id", runID.String())
	}

	result := &entities.ExtractionResult{
		RunID:        runID,
		Bank:         parser.Bank(),
		Statement:    stmt,
		Transactions: txs,
		Balance:      report,
	}

	if params.WriteFiles {
		if err := uc.writeResultFiles(result, params.OutputDir); err != nil {
			return nil, err
		}
	}

	if uc.repository != nil {
		stored := stmt
		stored.Transactions = txs
		if err := uc.repository.Save(ctx, &stored); err != nil {
			// Persistence is best effort; the extraction already succeeded.
			uc.logger.Warn("Could not persist statement", "error", err)
		}
	}

	return result, nil
}

// writeResultFiles writes DATOS, INGRESOS, and EGRESOS JSON files named after
// the company and the statement period.
func (uc *parseStatementUseCase) writeResultFiles(result *entities.ExtractionResult, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return pkgerrors.Wrapf(err, "create output dir %s", outputDir)
	}

	base := resultFileBase(result.Statement)

	files := []struct {
		suffix  string
		payload interface{}
	}{
		{suffix: "DATOS", payload: result.Statement},
		{suffix: "INGRESOS", payload: result.Income()},
		{suffix: "EGRESOS", payload: result.Expenses()},
	}

	for _, f := range files {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_%s.json", base, f.suffix))

		data, err := json.MarshalIndent(f.payload, "", "    ")
		if err != nil {
			return pkgerrors.Wrapf(err, "encode %s", f.suffix)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return pkgerrors.Wrapf(err, "write %s", path)
		}
		uc.logger.Info("Result file written", "path", path)
	}

	return nil
}

var fileNameChars = regexp.MustCompile(`[^A-Z0-9_\s]`)

// resultFileBase builds "COMPANY_NAME_01ABR2025_30ABR2025" from the header.
func resultFileBase(stmt entities.Statement) string {
	name := strings.ToUpper(parsers.CleanCompanyName(stmt.CompanyName))
	name = fileNameChars.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "SIN_NOMBRE"
	}

	start, end := stmt.PeriodRange()
	if start.IsZero() || end.IsZero() {
		return name + "_FECHA_INICIO_FECHA_FIN"
	}

	return fmt.Sprintf("%s_%02d%s%d_%02d%s%d",
		name,
		start.Day(), entities.SpanishMonthAbbrev[start.Month()], start.Year(),
		end.Day(), entities.SpanishMonthAbbrev[end.Month()], end.Year())
}
