package statement

import (
	"context"
	"testing"
	"time"

	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	calls     int
	gotFilter string
	gotFrom   string
	gotTo     string
	stmt      model.EngineStatement
	err       error
}

func (f *fakeEngine) GetStatement(ctx context.Context, filterType, fromDate, toDate string) (model.EngineStatement, error) {
	f.calls++
	f.gotFilter, f.gotFrom, f.gotTo = filterType, fromDate, toDate
	return f.stmt, f.err
}

type fakeSnapshots struct {
	portfolio model.Portfolio
	ok        bool
}

func (f *fakeSnapshots) Current() (model.Portfolio, bool) {
	return f.portfolio, f.ok
}

func TestServiceRejectsInvalidRangeBeforeEngineCall(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewService(engine, &fakeSnapshots{}, logger.NopLogger{})

	f, err := ParseFilter("custom", "2025-02-10", "2025-02-01")
	require.NoError(t, err)

	_, err = svc.Statement(context.Background(), f)
	assert.ErrorIs(t, err, InvalidRangeError)
	assert.Zero(t, engine.calls, "engine must not be called for an invalid range")
}

func TestServiceMergesUnrealizedFromSnapshot(t *testing.T) {
	now := time.Now()
	engine := &fakeEngine{
		stmt: model.EngineStatement{
			UnrealizedPnL: model.Number(999), // stale engine figure, snapshot wins
			Trades: []model.ClosedTrade{
				{Symbol: "BTC/USDT", EntryPrice: 100, Amount: 1, ProfitLoss: 20, ExitDate: now.Add(-time.Hour)},
			},
		},
	}
	snapshots := &fakeSnapshots{
		portfolio: model.Portfolio{
			Positions: []model.Position{{Symbol: "BTC/USDT", Amount: 1, AvgEntry: 100, CurrentPrice: 150}},
		},
		ok: true,
	}
	svc := NewService(engine, snapshots, logger.NopLogger{})

	st, err := svc.Statement(context.Background(), Filter{Kind: All})
	require.NoError(t, err)

	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, "all", engine.gotFilter)
	assert.InDelta(t, 20, st.RealizedPnL, 1e-9)
	assert.InDelta(t, 50, st.UnrealizedPnL, 1e-9)
	assert.InDelta(t, 70, st.TotalPnL, 1e-9)
}

func TestServiceFallsBackToEngineUnrealized(t *testing.T) {
	engine := &fakeEngine{stmt: model.EngineStatement{UnrealizedPnL: model.Number(-12.5)}}
	svc := NewService(engine, &fakeSnapshots{ok: false}, logger.NopLogger{})

	st, err := svc.Statement(context.Background(), Filter{Kind: All})
	require.NoError(t, err)
	assert.InDelta(t, -12.5, st.UnrealizedPnL, 1e-9)
}

func TestServicePassesCustomDates(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewService(engine, &fakeSnapshots{}, logger.NopLogger{})

	f, err := ParseFilter("custom", "2025-02-01", "2025-02-10")
	require.NoError(t, err)

	_, err = svc.Statement(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "custom", engine.gotFilter)
	assert.Equal(t, "2025-02-01", engine.gotFrom)
	assert.Equal(t, "2025-02-10", engine.gotTo)
}
