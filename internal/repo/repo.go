package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"confbackend/internal/model"
)

var (
	ErrPaperNotFound          = errors.New("paper not found")
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
	ErrDuplicateRegistration  = errors.New("duplicate paper id and email")
)

// Conflict field names reported by FindRegistrationConflict, in check order.
const (
	ConflictTransactionID = "Transaction ID"
	ConflictEmail         = "Email"
	ConflictPaperID       = "Paper ID"
)

type Repository interface {
	InsertContact(ctx context.Context, c *model.Contact) error
	InsertRegistration(ctx context.Context, reg *model.Registration) error
	FindRegistrationConflict(ctx context.Context, transactionID, email, paperID string) (string, error)
	InsertPaper(ctx context.Context, p *model.Paper) error
	GetPaperByID(ctx context.Context, id string) (*model.Paper, error)
	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

func (r *repository) InsertContact(ctx context.Context, c *model.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	row := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Message)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

func (r *repository) InsertRegistration(ctx context.Context, reg *model.Registration) error {
	query := `
		INSERT INTO registrations (id, name, paper_id, paper_title, institution, phone,
		                           email, amount, fee_category, transaction_id,
		                           registration_date, journal_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	row := r.db.QueryRowContext(ctx, query,
		reg.ID, reg.Name, reg.PaperID, reg.PaperTitle, reg.Institution, reg.Phone,
		reg.Email, reg.Amount, reg.FeeCategory, reg.TransactionID,
		reg.RegistrationDate, reg.JournalName,
	)
	if err := row.Scan(&reg.CreatedAt); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// FindRegistrationConflict is the advisory pre-insert check. The unique
// indexes remain the source of truth; two concurrent requests can both
// pass here and one will still fail at insert time.
func (r *repository) FindRegistrationConflict(ctx context.Context, transactionID, email, paperID string) (string, error) {
	query := `
		SELECT transaction_id, email, paper_id
		FROM registrations
		WHERE transaction_id = $1 OR email = $2 OR paper_id = $3
		LIMIT 1
	`

	var existingTxn, existingEmail, existingPaperID string
	err := r.db.QueryRowContext(ctx, query, transactionID, email, paperID).
		Scan(&existingTxn, &existingEmail, &existingPaperID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check registration conflict: %w", err)
	}

	switch {
	case existingTxn == transactionID:
		return ConflictTransactionID, nil
	case existingEmail == email:
		return ConflictEmail, nil
	default:
		return ConflictPaperID, nil
	}
}

func (r *repository) InsertPaper(ctx context.Context, p *model.Paper) error {
	query := `
		INSERT INTO papers (id, name, institution, title, email, phone,
		                    research_area, journal, country,
		                    filename, mimetype, size, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	row := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Institution, p.Title, p.Email, p.Phone,
		p.ResearchArea, p.Journal, p.Country,
		p.Filename, p.Mimetype, p.Size, p.FileURL,
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert paper: %w", err)
	}
	return nil
}

func (r *repository) GetPaperByID(ctx context.Context, id string) (*model.Paper, error) {
	query := `
		SELECT id, name, institution, title, email, phone,
		       research_area, journal, country,
		       filename, mimetype, size, file_url, created_at
		FROM papers
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var p model.Paper
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Institution,
		&p.Title,
		&p.Email,
		&p.Phone,
		&p.ResearchArea,
		&p.Journal,
		&p.Country,
		&p.Filename,
		&p.Mimetype,
		&p.Size,
		&p.FileURL,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaperNotFound
		}
		return nil, fmt.Errorf("failed to get paper: %w", err)
	}

	return &p, nil
}

// mapUniqueViolation translates a postgres unique-index violation (23505)
// into the matching sentinel by constraint name. Returns nil for anything
// that is not a unique violation.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch pqErr.Constraint {
	case "registrations_transaction_id_key":
		return ErrDuplicateTransactionID
	case "registrations_paper_id_email_key":
		return ErrDuplicateRegistration
	default:
		return fmt.Errorf("unique violation on %s: %w", pqErr.Constraint, err)
	}
}
