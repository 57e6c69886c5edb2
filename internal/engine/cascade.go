package engine

import "crm_dev_v1_202601/internal/model"

// 级联规则（见数据模型的引用关系表）：
//   删 Customer -> 删其 Deal、删其 Activity、从所有 Campaign 的关联列表里摘除
//   删 Supplier -> 删其 Activity
//   删 Deal     -> 删其 Activity
// 这里只做纯计算，返回各关联集合的新状态；服务层把主集合和这些结果
// 一次性赋值回 store，外界观察不到"客户没了活动还挂着"的中间态

// CustomerCascade 删除客户后各关联集合的新状态
type CustomerCascade struct {
	Deals      []model.Deal
	Activities []model.Activity
	Campaigns  []model.Campaign
}

// CustomerDeleteCascade 计算删除客户 id 的级联结果
func CustomerDeleteCascade(id string, deals []model.Deal, activities []model.Activity, campaigns []model.Campaign) CustomerCascade {
	keptDeals := make([]model.Deal, 0, len(deals))
	for _, d := range deals {
		if d.CustomerID != id {
			keptDeals = append(keptDeals, d)
		}
	}

	keptActs := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if a.CustomerID != id {
			keptActs = append(keptActs, a)
		}
	}

	newCamps := make([]model.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		linked := make([]string, 0, len(c.LinkedCustomerIDs))
		for _, cid := range c.LinkedCustomerIDs {
			if cid != id {
				linked = append(linked, cid)
			}
		}
		c.LinkedCustomerIDs = linked
		newCamps = append(newCamps, c)
	}

	return CustomerCascade{Deals: keptDeals, Activities: keptActs, Campaigns: newCamps}
}

// SupplierDeleteCascade 计算删除供应商 id 后的活动集合
func SupplierDeleteCascade(id string, activities []model.Activity) []model.Activity {
	kept := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if a.SupplierID != id {
			kept = append(kept, a)
		}
	}
	return kept
}

// DealDeleteCascade 计算删除商机 id 后的活动集合
func DealDeleteCascade(id string, activities []model.Activity) []model.Activity {
	kept := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if a.DealID != id {
			kept = append(kept, a)
		}
	}
	return kept
}
