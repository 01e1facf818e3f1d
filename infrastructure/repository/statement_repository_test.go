package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"statement-ocr/domain/entities"
	"statement-ocr/test/helpers"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	cleanup := func() {
		_ = db.Close()
	}

	return gormDB, mock, cleanup
}

func TestStatementRepository_Save(t *testing.T) {
	ctx := helpers.TestContext(t)
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewStatementRepository(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "statements"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		stmt := &entities.Statement{
			Bank:           entities.BankBBVAEmpresa,
			CompanyName:    "ENDLESS TECHNOLOGIES SA DE CV",
			AccountNumber:  "0123456789",
			OpeningBalance: decimal.RequireFromString("1000.00"),
			ClosingBalance: decimal.RequireFromString("1500.00"),
		}

		err := repo.Save(ctx, stmt)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "statements"`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.Save(ctx, &entities.Statement{Bank: entities.BankInbursaEmpresa})
		require.Error(t, err)
	})
}

func TestStatementRepository_FindByAccount(t *testing.T) {
	ctx := helpers.TestContext(t)
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewStatementRepository(db)

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "bank", "company_name", "account_number"}).
			AddRow(7, "bbva_empresa", "ENDLESS TECHNOLOGIES SA DE CV", "0123456789")

		mock.ExpectQuery(`SELECT \* FROM "statements"`).
			WithArgs("0123456789").
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "statement_id"}))

		stmts, err := repo.FindByAccount(ctx, "0123456789")
		require.NoError(t, err)
		require.Len(t, stmts, 1)
		assert.Equal(t, entities.BankBBVAEmpresa, stmts[0].Bank)
	})

	t.Run("no results", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "statements"`).
			WithArgs("9999999999").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		stmts, err := repo.FindByAccount(ctx, "9999999999")
		require.NoError(t, err)
		assert.Empty(t, stmts)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "statements"`).
			WithArgs("0123456789").
			WillReturnError(sql.ErrConnDone)

		stmts, err := repo.FindByAccount(ctx, "0123456789")
		require.Error(t, err)
		assert.Nil(t, stmts)
	})
}
