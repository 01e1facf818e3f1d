// Package repository persists parsed statements through gorm. Persistence is
// optional: the container only wires it when a database is configured.
package repository

import (
	"context"

	"gorm.io/gorm"

	"statement-ocr/domain/entities"
	"statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
)

// statementRepository implements the StatementRepository interface.
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository.
func NewStatementRepository(db *gorm.DB) interfaces.StatementRepository {
	return &statementRepository{db: db}
}

// Save stores a statement together with its transactions.
func (r *statementRepository) Save(ctx context.Context, stmt *entities.Statement) error {
	if err := r.db.WithContext(ctx).Create(stmt).Error; err != nil {
		return &errors.RepositoryError{
			Operation: "Save",
			Entity:    "Statement",
			Err:       err,
		}
	}
	return nil
}

// FindByAccount returns previously stored statements for an account, newest
// first, including their transactions.
func (r *statementRepository) FindByAccount(
	ctx context.Context,
	accountNumber string,
) ([]entities.Statement, error) {
	var stmts []entities.Statement

	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Where("account_number = ?", accountNumber).
		Order("created_at DESC").
		Find(&stmts).Error
	if err != nil {
		return nil, &errors.RepositoryError{
			Operation: "FindByAccount",
			Entity:    "Statement",
			Err:       err,
		}
	}

	return stmts, nil
}
