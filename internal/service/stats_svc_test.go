package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_dev_v1_202601/internal/model"
)

func setupStats(t *testing.T) (*StatsService, *CRMService) {
	t.Helper()
	crm, _ := setupCRM(t)
	return NewStatsService(crm), crm
}

func TestDashboard_AdminNumbers(t *testing.T) {
	stats, _ := setupStats(t)

	got := stats.Dashboard(adminCaller)
	assert.Equal(t, 5, got.TotalCustomers)
	// 种子商机：deal-4 已成交，其余 4 条进行中
	assert.Equal(t, 4, got.ActiveDeals)
	// 种子活动：act-3 / act-5 已完成，其余 4 条待办
	assert.Equal(t, 4, got.PendingActivities)
	assert.InDelta(t, 130000, got.TotalDealValue, 1e-9)
	// 15000*0.5 + 50000*0.3 + 25000*0.75 + 30000*1.0 + 10000*0.5
	assert.InDelta(t, 76250, got.DealForecast, 1e-9)
}

func TestDashboard_ScopedToVisibleData(t *testing.T) {
	stats, _ := setupStats(t)

	got := stats.Dashboard(sales1Caller)
	// sales1 名下：deal-2 (50000) 和 deal-5 (10000)
	assert.InDelta(t, 60000, got.TotalDealValue, 1e-9)
	assert.Equal(t, 2, got.TotalCustomers)
}

func TestUpcomingActivities_SortedByDueDate(t *testing.T) {
	stats, _ := setupStats(t)

	got := stats.UpcomingActivities(adminCaller, 5)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DueDate, got[i].DueDate, "位置 %d 未按截止日期升序", i)
	}
	for _, a := range got {
		assert.Equal(t, model.ActivityPending, a.Status, "混入了非待办活动 %s", a.ID)
	}

	assert.Len(t, stats.UpcomingActivities(adminCaller, 2), 2)
}

func TestRecentWonDeals(t *testing.T) {
	stats, _ := setupStats(t)

	got := stats.RecentWonDeals(adminCaller, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "deal-4", got[0].ID)
}

func TestCommissions_Math(t *testing.T) {
	stats, crm := setupStats(t)
	ctx := context.Background()

	report := stats.Commissions(adminCaller)
	assert.InDelta(t, 30000, report.TotalWonValue, 1e-9)
	assert.InDelta(t, model.DefaultCommissionRate, report.Rate, 1e-9)
	assert.InDelta(t, 3000, report.TotalCommission, 1e-9)

	// 费率变更立刻反映在报表里
	require.NoError(t, crm.SetCommissionRate(ctx, adminCaller, 0.2))
	report = stats.Commissions(adminCaller)
	assert.InDelta(t, 6000, report.TotalCommission, 1e-9)
}

func TestCommissions_ScopedToVisibleDeals(t *testing.T) {
	stats, _ := setupStats(t)

	// sales1 名下没有成交商机
	report := stats.Commissions(sales1Caller)
	assert.Empty(t, report.WonDeals)
	assert.InDelta(t, 0, report.TotalCommission, 1e-9)
}
