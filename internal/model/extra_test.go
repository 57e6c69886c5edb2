package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUnmarshal_CollectsUnknownFields(t *testing.T) {
	data := []byte(`{"id":"cust-1","name":"Acme","legacyCode":"LC-42","syncedAt":"2024-07-01T00:00:00Z"}`)

	var c Customer
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if c.ID != "cust-1" || c.Name != "Acme" {
		t.Errorf("已建模字段 = %+v", c)
	}
	if len(c.Extra) != 2 {
		t.Fatalf("Extra = %v, want 2 个未建模字段", c.Extra)
	}
	if string(c.Extra["legacyCode"]) != `"LC-42"` {
		t.Errorf("legacyCode = %s", c.Extra["legacyCode"])
	}
}

func TestUnmarshal_NoUnknownFieldsLeavesExtraNil(t *testing.T) {
	var c Customer
	if err := json.Unmarshal([]byte(`{"id":"cust-1","name":"Acme"}`), &c); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if c.Extra != nil {
		t.Errorf("Extra = %v, want nil", c.Extra)
	}
}

func TestMarshal_MergesExtraBack(t *testing.T) {
	c := Customer{
		ID:    "cust-1",
		Name:  "Acme",
		Extra: Extra{"legacyCode": json.RawMessage(`"LC-42"`)},
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if !strings.Contains(string(data), `"legacyCode":"LC-42"`) {
		t.Errorf("输出缺少未建模字段: %s", data)
	}

	// 再读回来还原相同状态
	var back Customer
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if string(back.Extra["legacyCode"]) != `"LC-42"` {
		t.Errorf("回读 Extra = %v", back.Extra)
	}
}

func TestMarshal_StructFieldWinsOverExtra(t *testing.T) {
	// Extra 里混进已建模的 key 时以结构体字段为准，不产生重复 key
	c := Customer{
		ID:    "cust-1",
		Name:  "Real Name",
		Extra: Extra{"name": json.RawMessage(`"Stale Name"`)},
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if strings.Count(string(data), `"name"`) != 1 {
		t.Errorf("name key 出现多次: %s", data)
	}
	if !strings.Contains(string(data), `"Real Name"`) {
		t.Errorf("结构体字段未生效: %s", data)
	}
}

func TestExtra_AllEntityKinds(t *testing.T) {
	payload := `{"id":"x","vendorRef":"VR-1"}`

	var sup Supplier
	var deal Deal
	var act Activity
	var camp Campaign
	var prod Product
	for name, c := range map[string]struct {
		v   any
		get func() Extra
	}{
		"supplier": {&sup, func() Extra { return sup.Extra }},
		"deal":     {&deal, func() Extra { return deal.Extra }},
		"activity": {&act, func() Extra { return act.Extra }},
		"campaign": {&camp, func() Extra { return camp.Extra }},
		"product":  {&prod, func() Extra { return prod.Extra }},
	} {
		if err := json.Unmarshal([]byte(payload), c.v); err != nil {
			t.Fatalf("%s 反序列化失败: %v", name, err)
		}
		if string(c.get()["vendorRef"]) != `"VR-1"` {
			t.Errorf("%s 未保留未建模字段: %v", name, c.get())
		}
	}
}
