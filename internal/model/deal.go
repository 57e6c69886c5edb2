package model

// DealStage 商机阶段
type DealStage string

const (
	StageProspecting   DealStage = "Prospecting"
	StageQualification DealStage = "Qualification"
	StageProposal      DealStage = "Proposal"
	StageNegotiation   DealStage = "Negotiation"
	StageWon           DealStage = "Won"
	StageLost          DealStage = "Lost"
)

// DealStageProbabilities 阶段加权概率，用于 Dashboard 的加权预测
var DealStageProbabilities = map[DealStage]float64{
	StageProspecting:   0.10,
	StageQualification: 0.30,
	StageProposal:      0.50,
	StageNegotiation:   0.75,
	StageWon:           1.00,
	StageLost:          0.00,
}

// DefaultCommissionRate 默认佣金率 10%
const DefaultCommissionRate = 0.10

// Deal 商机
// 必须关联一个 Customer；被 Activity.DealID 引用，删除时级联清理相关活动
type Deal struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CustomerID string    `json:"customerId"`
	Value      float64   `json:"value"`
	Stage      DealStage `json:"stage"`
	CloseDate  string    `json:"closeDate"` // YYYY-MM-DD
	Notes      string    `json:"notes,omitempty"`
	OwnerID    string    `json:"ownerId,omitempty"`
	Extra      Extra     `json:"-"`
}
