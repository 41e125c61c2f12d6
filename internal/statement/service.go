package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
)

type EngineFetcher interface {
	GetStatement(ctx context.Context, filterType, fromDate, toDate string) (model.EngineStatement, error)
}

type SnapshotSource interface {
	Current() (model.Portfolio, bool)
}

// Service fetches closed trades from the engine on demand (never on the
// polling cadence) and folds them locally, so the displayed figures follow
// the same arithmetic as every other view.
type Service struct {
	engine    EngineFetcher
	snapshots SnapshotSource
	logger    logger.Logger
}

func NewService(engine EngineFetcher, snapshots SnapshotSource, logger logger.Logger) *Service {
	return &Service{
		engine:    engine,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *Service) Statement(ctx context.Context, f Filter) (model.Statement, error) {
	now := time.Now()
	if err := f.Validate(now); err != nil {
		return model.Statement{}, err
	}

	filterType, fromDate, toDate := f.QueryParams()
	engineStmt, err := s.engine.GetStatement(ctx, filterType, fromDate, toDate)
	if err != nil {
		return model.Statement{}, fmt.Errorf("%w: can't fetch statement", err)
	}

	st := Aggregate(engineStmt.Trades, f, now)

	// Unrealized figures come from the live snapshot when one exists; the
	// engine's number is the fallback for a cold start.
	if p, ok := s.snapshots.Current(); ok {
		st.UnrealizedPnL = p.TotalProfitLoss()
	} else {
		st.UnrealizedPnL = engineStmt.UnrealizedPnL.Float()
	}
	st.TotalPnL = st.RealizedPnL + st.UnrealizedPnL

	if engineStmt.TotalTrades != st.TotalTrades {
		s.logger.Debugf("engine reported %d trades, local fold kept %d after filtering",
			engineStmt.TotalTrades, st.TotalTrades)
	}

	return st, nil
}
