package repository

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/agentdesk/internal/domain"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// Querier is the subset of *pgxpool.Pool the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var procedureName = regexp.MustCompile(`^sp_[a-z0-9_]+$`)

// Procedures invokes stored functions by name with positional arguments.
type Procedures struct {
	db Querier
}

// NewProcedures wraps db. A nil db yields a Procedures whose calls fail with
// a 503 domain error.
func NewProcedures(db Querier) *Procedures {
	return &Procedures{db: db}
}

// Available reports whether a database is attached.
func (p *Procedures) Available() bool {
	return p != nil && p.db != nil
}

func (p *Procedures) unavailable() error {
	return apperrors.NewUnavailable("database not configured")
}

// Query runs SELECT * FROM name($1..$n).
func (p *Procedures) Query(ctx context.Context, name string, args ...any) (pgx.Rows, error) {
	if !p.Available() {
		return nil, p.unavailable()
	}
	sql, err := callSQL(name, len(args))
	if err != nil {
		return nil, err
	}
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

// Mutate runs a write procedure returning (success, message, record_id).
func (p *Procedures) Mutate(ctx context.Context, name string, args ...any) (domain.MutationResult, error) {
	rows, err := p.Query(ctx, name, args...)
	if err != nil {
		return domain.MutationResult{}, err
	}
	res, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (domain.MutationResult, error) {
		var (
			out domain.MutationResult
			id  *string
		)
		if err := row.Scan(&out.Success, &out.Message, &id); err != nil {
			return out, err
		}
		if id != nil {
			out.ID = *id
		}
		return out, nil
	})
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

// DB exposes the raw querier for repositories that issue plain SQL.
func (p *Procedures) DB() (Querier, error) {
	if !p.Available() {
		return nil, p.unavailable()
	}
	return p.db, nil
}

func callSQL(name string, argc int) (string, error) {
	if !procedureName.MatchString(name) {
		return "", fmt.Errorf("invalid procedure name %q", name)
	}
	placeholders := make([]string, argc)
	for i := range placeholders {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return "SELECT * FROM " + name + "(" + strings.Join(placeholders, ", ") + ")", nil
}
