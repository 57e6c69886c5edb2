package codec

import (
	"encoding/json"
	"testing"

	"crm_dev_v1_202601/internal/engine"
	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/model"
)

var (
	admin  = model.Caller{ID: "user-admin", Role: model.RoleAdmin}
	sales1 = model.Caller{ID: "user-sales1", Role: model.RoleSales}
)

func TestExportImport_RoundTrip(t *testing.T) {
	src := []model.Customer{
		{ID: "cust-1", Name: "Acme Corp", Email: "a@acme.com", Status: model.CustomerActive, OwnerID: "user-admin"},
		{ID: "cust-2", Name: "Globex Inc.", Email: "g@globex.com", Status: model.CustomerLead, OwnerID: "user-sales1"},
	}
	data, err := Export(src)
	if err != nil {
		t.Fatalf("Export 失败: %v", err)
	}

	got, err := Import(data, nil, admin, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("导入 %d 条, want 2", len(got))
	}
	for i := range got {
		// ID 重新分配，其余字段原样
		if got[i].ID == src[i].ID {
			t.Errorf("记录 %d 的 ID 未重新分配", i)
		}
		if got[i].Name != src[i].Name || got[i].Email != src[i].Email || got[i].OwnerID != src[i].OwnerID {
			t.Errorf("记录 %d 字段不一致: %+v vs %+v", i, got[i], src[i])
		}
	}
}

func TestImport_AppendsToExisting(t *testing.T) {
	existing := []model.Customer{{ID: "cust-1", Name: "Old"}}
	data := []byte(`[{"id":"cust-x","name":"Imported"}]`)

	got, err := Import(data, existing, admin, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if len(got) != 2 || got[0].ID != "cust-1" || got[1].Name != "Imported" {
		t.Errorf("合并结果 = %v", got)
	}
	if len(existing) != 1 {
		t.Error("入参集合不应被修改")
	}
}

func TestImport_OwnerBackfill(t *testing.T) {
	data := []byte(`[
		{"name":"No Owner"},
		{"name":"Has Owner","ownerId":"user-sales2"}
	]`)

	// 非 Admin：缺归属回填为本人，已有归属保留
	got, err := Import(data, nil, sales1, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if got[0].OwnerID != "user-sales1" {
		t.Errorf("缺归属记录 ownerID = %q, want user-sales1", got[0].OwnerID)
	}
	if got[1].OwnerID != "user-sales2" {
		t.Errorf("已有归属记录 ownerID = %q, want user-sales2", got[1].OwnerID)
	}

	// Admin：原样保留，包括空归属
	got, err = Import(data, nil, admin, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if got[0].OwnerID != "" {
		t.Errorf("Admin 导入不应回填归属, got %q", got[0].OwnerID)
	}
}

func TestImport_AlwaysAppends(t *testing.T) {
	// 同一份文件导两次，数量翻倍，不做去重
	data := []byte(`[{"name":"Dup"}]`)
	once, err := Import(data, nil, admin, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	twice, err := Import(data, once, admin, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if len(twice) != 2 {
		t.Errorf("二次导入后 %d 条, want 2", len(twice))
	}
}

func TestImport_PreservesUnknownFields(t *testing.T) {
	// 其它系统导出的文件可能带本系统未建模的字段，导入时原样保留，
	// 只有 id（和按规则回填的 ownerId）被改写
	data := []byte(`[{"name":"Acme","email":"a@acme.com","legacyCode":"LC-42"}]`)

	imported, err := Import(data, nil, sales1, engine.Customers)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if string(imported[0].Extra["legacyCode"]) != `"LC-42"` {
		t.Fatalf("未建模字段丢失: %v", imported[0].Extra)
	}

	// 再导出时字段跟着出去
	out, err := Export(imported)
	if err != nil {
		t.Fatalf("Export 失败: %v", err)
	}
	var back []map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("导出内容解析失败: %v", err)
	}
	if back[0]["legacyCode"] != "LC-42" {
		t.Errorf("导出缺少未建模字段: %v", back[0])
	}
	// 改写过的字段用的是新值
	if back[0]["id"] == "" || back[0]["ownerId"] != "user-sales1" {
		t.Errorf("id/ownerId 改写不正确: %v", back[0])
	}
}

func TestImport_FormatErrors(t *testing.T) {
	cases := []struct {
		name string
		blob string
	}{
		{"不是数组", `{"name":"x"}`},
		{"元素不是对象", `[1,2,3]`},
		{"字段类型不符", `[{"name":"x","value":"not-a-number"}]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var err error
			if c.name == "字段类型不符" {
				_, err = Import([]byte(c.blob), nil, admin, engine.Deals)
			} else {
				_, err = Import([]byte(c.blob), nil, admin, engine.Customers)
			}
			if !errs.IsFormat(err) {
				t.Errorf("err = %v, want FormatError", err)
			}
		})
	}
}

func TestExport_PreservesOrderAndShape(t *testing.T) {
	src := []model.Deal{
		{ID: "deal-2", Name: "B", Value: 2, Stage: model.StageWon, CloseDate: "2024-06-25"},
		{ID: "deal-1", Name: "A", Value: 1, Stage: model.StageProposal, CloseDate: "2024-07-31"},
	}
	data, err := Export(src)
	if err != nil {
		t.Fatalf("Export 失败: %v", err)
	}
	var back []model.Deal
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("导出内容不是合法 JSON 数组: %v", err)
	}
	if back[0].ID != "deal-2" || back[1].ID != "deal-1" {
		t.Errorf("导出顺序被改变: %v", back)
	}
}
