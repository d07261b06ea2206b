// Package postgres backs the sales ledger with a table instead of a workbook
// file. It is the scaled variant of the same append-only contract: inserts
// carry a serial sequence so read-back order is append order, and remove-last
// deletes exactly the highest sequence.
package postgres

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sales (
			seq                 BIGSERIAL PRIMARY KEY,
			ts                  TEXT NOT NULL,
			sale_date           TEXT NOT NULL,
			items               TEXT NOT NULL,
			subtotal_cents      BIGINT NOT NULL,
			discount_cents      BIGINT NOT NULL DEFAULT 0,
			tax_cents           BIGINT NOT NULL,
			tip_cents           BIGINT NOT NULL DEFAULT 0,
			card_fee_cents      BIGINT NOT NULL DEFAULT 0,
			total_cents         BIGINT NOT NULL,
			payment_method      TEXT NOT NULL,
			notes               TEXT NOT NULL DEFAULT '',
			cash_received_cents BIGINT NOT NULL DEFAULT 0,
			change_cents        BIGINT NOT NULL DEFAULT 0
		)
	`)
	return err
}

func (s *Store) Append(ctx context.Context, record domain.SaleRecord) error {
	if record.Timestamp == "" || record.Date == "" {
		return store.ErrInvalidSale
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (
			ts, sale_date, items, subtotal_cents, discount_cents, tax_cents,
			tip_cents, card_fee_cents, total_cents, payment_method, notes,
			cash_received_cents, change_cents
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		record.Timestamp, record.Date, record.Items,
		int64(record.SubtotalCents), int64(record.DiscountCents), int64(record.TaxCents),
		int64(record.TipCents), int64(record.CardFeeCents), int64(record.TotalCents),
		record.PaymentMethod, record.Notes,
		int64(record.CashReceivedCents), int64(record.ChangeCents),
	)
	return err
}

func (s *Store) RemoveLast(ctx context.Context) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM sales
		WHERE seq = (SELECT MAX(seq) FROM sales)
	`)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ReadAll degrades query failures to an empty history, matching the file
// backend: callers observe storage trouble only as absent data.
func (s *Store) ReadAll(ctx context.Context) ([]domain.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, sale_date, items, subtotal_cents, discount_cents, tax_cents,
			tip_cents, card_fee_cents, total_cents, payment_method, notes,
			cash_received_cents, change_cents
		FROM sales
		ORDER BY seq
	`)
	if err != nil {
		log.Printf("[pg-ledger] read failed, treating as empty: %v", err)
		return []domain.SaleRecord{}, nil
	}
	defer rows.Close()

	records := make([]domain.SaleRecord, 0, 128)
	for rows.Next() {
		var r domain.SaleRecord
		if err := rows.Scan(
			&r.Timestamp, &r.Date, &r.Items, &r.SubtotalCents, &r.DiscountCents,
			&r.TaxCents, &r.TipCents, &r.CardFeeCents, &r.TotalCents,
			&r.PaymentMethod, &r.Notes, &r.CashReceivedCents, &r.ChangeCents,
		); err != nil {
			log.Printf("[pg-ledger] scan failed, treating as empty: %v", err)
			return []domain.SaleRecord{}, nil
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[pg-ledger] read failed, treating as empty: %v", err)
		return []domain.SaleRecord{}, nil
	}
	return records, nil
}
