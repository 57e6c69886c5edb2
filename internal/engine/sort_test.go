package engine

import (
	"testing"

	"crm_dev_v1_202601/internal/model"
)

func TestSortBy_StringAscending(t *testing.T) {
	coll := NewCollator("en")
	records := []model.Customer{
		{ID: "1", Name: "Charlie"},
		{ID: "2", Name: "alpha"},
		{ID: "3", Name: "Bravo"},
	}
	got := SortBy(records, func(c model.Customer) any { return c.Name }, Ascending, coll)
	want := []string{"alpha", "Bravo", "Charlie"}
	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("位置 %d = %s, want %s", i, got[i].Name, w)
		}
	}
	if records[0].Name != "Charlie" {
		t.Error("入参不应被修改")
	}
}

func TestSortBy_NumericDescending(t *testing.T) {
	coll := NewCollator("en")
	records := []model.Deal{
		{ID: "1", Value: 100},
		{ID: "2", Value: 5000},
		{ID: "3", Value: 42},
	}
	got := SortBy(records, func(d model.Deal) any { return d.Value }, Descending, coll)
	if got[0].Value != 5000 || got[2].Value != 42 {
		t.Errorf("降序结果 = %v", got)
	}
}

func TestSortBy_Stability(t *testing.T) {
	coll := NewCollator("en")
	records := []model.Deal{
		{ID: "1", Name: "B", Value: 1},
		{ID: "2", Name: "A", Value: 2},
		{ID: "3", Name: "A", Value: 3},
	}
	got := SortBy(records, func(d model.Deal) any { return d.Name }, Ascending, coll)
	// 相等键保持原相对顺序
	if got[0].ID != "2" || got[1].ID != "3" || got[2].ID != "1" {
		t.Errorf("稳定性被破坏: %v", got)
	}
}

func TestSortBy_UnknownKeyKeepsOrder(t *testing.T) {
	coll := NewCollator("en")
	records := []model.Deal{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}
	// key 函数返回 nil 时所有比较视为相等，顺序不变
	got := SortBy(records, func(d model.Deal) any { return nil }, Ascending, coll)
	for i, r := range got {
		if r.ID != records[i].ID {
			t.Errorf("顺序被改变: %v", got)
			break
		}
	}
}
