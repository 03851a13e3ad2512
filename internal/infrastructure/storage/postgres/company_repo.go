package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/company"
)

// CompanyRepo stores the singleton company profile as a JSONB document.
type CompanyRepo struct {
	txm *TxManager
}

var _ company.Repository = (*CompanyRepo)(nil)

func NewCompanyRepo(txm *TxManager) *CompanyRepo {
	return &CompanyRepo{txm: txm}
}

func (r *CompanyRepo) Get(ctx context.Context) (*company.Company, error) {
	var doc []byte
	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, "SELECT doc FROM company WHERE id = $1", "company").
		Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("company", "company")
		}
		return nil, apperror.NewStorage(fmt.Errorf("get company: %w", err))
	}

	var c company.Company
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("unmarshal company: %w", err)
	}
	c.ID = "company"
	return &c, nil
}

func (r *CompanyRepo) Save(ctx context.Context, c *company.Company) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal company: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO company (id, doc)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc
	`, "company", doc)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("save company: %w", err))
	}
	return nil
}
