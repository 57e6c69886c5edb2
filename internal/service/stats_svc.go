package service

import (
	"sort"

	"crm_dev_v1_202601/internal/model"
)

// DashboardStats 仪表盘汇总指标，全部基于调用者可见的数据算出
type DashboardStats struct {
	TotalCustomers    int
	ActiveDeals       int // 阶段不为 Won/Lost 的商机数
	PendingActivities int
	TotalDealValue    float64
	DealForecast      float64 // Σ 商机金额 × 阶段概率
}

// CommissionReport 佣金报表
type CommissionReport struct {
	WonDeals        []model.Deal
	TotalWonValue   float64
	Rate            float64
	TotalCommission float64
}

// StatsService 仪表盘与佣金统计，只读，复用 CRMService 的可见性过滤
type StatsService struct {
	crm *CRMService
}

// NewStatsService 创建统计服务
func NewStatsService(crm *CRMService) *StatsService {
	return &StatsService{crm: crm}
}

// Dashboard 汇总指标
func (s *StatsService) Dashboard(caller model.Caller) DashboardStats {
	deals := s.crm.ListDeals(caller)
	activities := s.crm.ListActivities(caller)

	stats := DashboardStats{
		TotalCustomers: len(s.crm.ListCustomers(caller)),
	}
	for _, d := range deals {
		if d.Stage != model.StageWon && d.Stage != model.StageLost {
			stats.ActiveDeals++
		}
		stats.TotalDealValue += d.Value
		stats.DealForecast += d.Value * model.DealStageProbabilities[d.Stage]
	}
	for _, a := range activities {
		if a.Status == model.ActivityPending {
			stats.PendingActivities++
		}
	}
	return stats
}

// UpcomingActivities 最近的待办活动，按截止日期升序取前 limit 条
func (s *StatsService) UpcomingActivities(caller model.Caller, limit int) []model.Activity {
	var pending []model.Activity
	for _, a := range s.crm.ListActivities(caller) {
		if a.Status == model.ActivityPending {
			pending = append(pending, a)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueDate < pending[j].DueDate
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending
}

// RecentWonDeals 最近成交的商机，按成交日期降序取前 limit 条
func (s *StatsService) RecentWonDeals(caller model.Caller, limit int) []model.Deal {
	var won []model.Deal
	for _, d := range s.crm.ListDeals(caller) {
		if d.Stage == model.StageWon {
			won = append(won, d)
		}
	}
	sort.SliceStable(won, func(i, j int) bool {
		return won[i].CloseDate > won[j].CloseDate
	})
	if limit > 0 && len(won) > limit {
		won = won[:limit]
	}
	return won
}

// Commissions 佣金报表：成交商机总额 × 当前佣金率
func (s *StatsService) Commissions(caller model.Caller) CommissionReport {
	report := CommissionReport{Rate: s.crm.CommissionRate()}
	for _, d := range s.crm.ListDeals(caller) {
		if d.Stage == model.StageWon {
			report.WonDeals = append(report.WonDeals, d)
			report.TotalWonValue += d.Value
		}
	}
	report.TotalCommission = report.TotalWonValue * report.Rate
	return report
}
