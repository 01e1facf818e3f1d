package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"statement-ocr/domain/entities"
)

// ModelCatalog resolves which model artifacts an engine profile needs.
type ModelCatalog interface {
	// ArtifactsFor returns the artifacts required by the given profile,
	// in download order.
	ArtifactsFor(profile entities.EngineProfile) []entities.ModelArtifact

	// Status inspects the local cache for every artifact of the profile.
	Status(profile entities.EngineProfile, modelsDir string) []entities.ArtifactStatus
}

// ArtifactFetcher downloads a single model artifact into the cache.
// Implementations must be idempotent: an artifact already present in
// destDir is left untouched.
type ArtifactFetcher interface {
	// Fetch downloads the artifact and returns its local path together
	// with whether the cache already held it.
	Fetch(ctx context.Context, artifact entities.ModelArtifact, destDir string) (path string, cacheHit bool, err error)
}

// BackupEngineProbe inspects the fallback OCR engine installation.
type BackupEngineProbe interface {
	// Detect looks the engine binary up on PATH and reports its version.
	Detect(ctx context.Context) entities.BackupEngineStatus

	// Instructions returns the manual, per-OS install steps for the
	// engine. The text is informational only and never executed.
	Instructions() string
}

// StatementParser extracts structured data from one bank's statement text.
type StatementParser interface {
	// Bank identifies the bank product this parser understands.
	Bank() entities.BankProduct

	// ParseGeneralData extracts the statement header data from page text.
	ParseGeneralData(pages []string) (entities.Statement, error)

	// ParseTransactions extracts the movement list. The opening balance is
	// passed through for parsers that need it to resolve amounts.
	ParseTransactions(pages []string, openingBalance decimal.Decimal) ([]entities.Transaction, error)
}

// BalanceValidator checks a parsed statement's arithmetic.
type BalanceValidator interface {
	// Validate compares declared totals against computed ones.
	Validate(stmt entities.Statement, txs []entities.Transaction) entities.BalanceReport
}

// StatementRepository persists parsed statements.
type StatementRepository interface {
	// Save stores a statement together with its transactions.
	Save(ctx context.Context, stmt *entities.Statement) error

	// FindByAccount returns previously stored statements for an account.
	FindByAccount(ctx context.Context, accountNumber string) ([]entities.Statement, error)
}
