package store

import (
	"context"
	"encoding/json"
	"testing"

	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/pkg/storage"
)

func TestOpen_FreshStoreUsesSeeds(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, storage.NewMemoryStore())

	if len(s.Customers) != 5 || s.Customers[0].ID != "cust-1" {
		t.Errorf("初始客户 = %d 条", len(s.Customers))
	}
	if len(s.Users) != 4 {
		t.Errorf("初始用户 = %d 个, want 4", len(s.Users))
	}
	if s.CommissionRate != model.DefaultCommissionRate {
		t.Errorf("初始佣金率 = %v, want %v", s.CommissionRate, model.DefaultCommissionRate)
	}
	if s.Session != nil {
		t.Error("新库不应有登录态")
	}
}

func TestOpen_LoadsPersistedState(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryStore()

	s := Open(ctx, blob)
	s.Customers = []model.Customer{{ID: "cust-x", Name: "Persisted"}}
	s.SaveCustomers(ctx)
	s.CommissionRate = 0.25
	s.SaveCommissionRate(ctx)
	s.Session = &s.Users[0]
	s.SaveSession(ctx)

	// 重新打开同一个 blob，状态应原样恢复
	s2 := Open(ctx, blob)
	if len(s2.Customers) != 1 || s2.Customers[0].ID != "cust-x" {
		t.Errorf("恢复后客户 = %v", s2.Customers)
	}
	if s2.CommissionRate != 0.25 {
		t.Errorf("恢复后佣金率 = %v", s2.CommissionRate)
	}
	if s2.Session == nil || s2.Session.ID != "user-admin" {
		t.Errorf("恢复后登录态 = %v", s2.Session)
	}
}

func TestOpen_CorruptBlobFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryStore()
	_ = blob.Save(ctx, KeyCustomers, []byte(`{not-json`))

	s := Open(ctx, blob)
	if len(s.Customers) != 5 {
		t.Errorf("损坏数据应回落种子, got %d 条", len(s.Customers))
	}
}

func TestReset_RestoresSeedsAndClearsKeys(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryStore()

	s := Open(ctx, blob)
	s.Customers = append(s.Customers, model.Customer{ID: "cust-extra"})
	s.SaveCustomers(ctx)
	s.CommissionRate = 0.5
	s.SaveCommissionRate(ctx)
	s.Session = &s.Users[0]
	s.SaveSession(ctx)

	s.Reset(ctx)

	if len(s.Customers) != 5 {
		t.Errorf("重置后客户 = %d 条, want 5", len(s.Customers))
	}
	if s.CommissionRate != model.DefaultCommissionRate {
		t.Errorf("重置后佣金率 = %v", s.CommissionRate)
	}
	if s.Session != nil {
		t.Error("重置后仍有登录态")
	}
	for _, key := range dataKeys {
		if _, ok, _ := blob.Load(ctx, key); ok {
			t.Errorf("重置后 %s 仍存在", key)
		}
	}
}

func TestReset_KeepsLanguageKeys(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryStore()
	_ = blob.Save(ctx, "language", []byte(`"zh"`))
	_ = blob.Save(ctx, "customLabels", []byte(`{"customers.title":"大客户"}`))

	s := Open(ctx, blob)
	s.Reset(ctx)

	if _, ok, _ := blob.Load(ctx, "language"); !ok {
		t.Error("重置不应清除语言设置")
	}
	if _, ok, _ := blob.Load(ctx, "customLabels"); !ok {
		t.Error("重置不应清除自定义标签")
	}
}

func TestSaveSession_NilClearsKeys(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemoryStore()

	s := Open(ctx, blob)
	s.Session = &s.Users[1]
	s.SaveSession(ctx)

	data, ok, _ := blob.Load(ctx, KeyLoggedInRole)
	if !ok {
		t.Fatal("登录后应写入角色 key")
	}
	var role model.UserRole
	_ = json.Unmarshal(data, &role)
	if role != model.RoleSales {
		t.Errorf("持久化角色 = %s, want Sales", role)
	}

	s.Session = nil
	s.SaveSession(ctx)
	if _, ok, _ := blob.Load(ctx, KeyLoggedInUser); ok {
		t.Error("清会话后登录 key 仍存在")
	}
	if _, ok, _ := blob.Load(ctx, KeyLoggedInRole); ok {
		t.Error("清会话后角色 key 仍存在")
	}
}
