// Package settings persists the only two client-side values that survive a
// session: the chosen display currency and a minimal session identity.
// Snapshots and prices are never persisted, always refetched.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/paperdesk/portfolio-sync/internal/currency"
	"github.com/paperdesk/portfolio-sync/internal/logger"
)

var UnknownCurrencyError = errors.New("unknown display currency")

type Settings struct {
	UserID          string `db:"user_id"`
	DisplayCurrency string `db:"display_currency"`
	SessionToken    string `db:"session_token"`
}

type Store struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewStore(db *sqlx.DB, logger logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

const (
	_querySettings = "SELECT user_id, display_currency, session_token FROM user_settings WHERE user_id = $1"

	_upsertSettings = `INSERT INTO user_settings (
							user_id,
							display_currency,
							session_token
						) VALUES ($1,$2,$3)
						ON CONFLICT (user_id)
						DO UPDATE SET
							display_currency = EXCLUDED.display_currency,
							session_token = EXCLUDED.session_token;`
)

// Load returns stored settings, or canonical-unit defaults when the user has
// none yet.
func (s *Store) Load(ctx context.Context, userID string) (Settings, error) {
	var st Settings
	if err := s.db.GetContext(ctx, &st, _querySettings, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{
				UserID:          userID,
				DisplayCurrency: currency.Canonical,
			}, nil
		}
		return Settings{}, fmt.Errorf("%w: can't query user settings", err)
	}
	return st, nil
}

func (s *Store) Save(ctx context.Context, st Settings) error {
	if !currency.Known(st.DisplayCurrency) {
		return fmt.Errorf("%w: %s", UnknownCurrencyError, st.DisplayCurrency)
	}
	if _, err := s.db.ExecContext(ctx, _upsertSettings, st.UserID, st.DisplayCurrency, st.SessionToken); err != nil {
		return fmt.Errorf("%w: can't upsert user settings", err)
	}
	return nil
}

func (s *Store) UpdateDisplayCurrency(ctx context.Context, userID, code string) (Settings, error) {
	st, err := s.Load(ctx, userID)
	if err != nil {
		return Settings{}, err
	}
	st.DisplayCurrency = code
	if err := s.Save(ctx, st); err != nil {
		return Settings{}, err
	}
	return st, nil
}
