package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra 未建模字段
// 导入的文件可能带有本系统没有的字段（其它系统导出时附加的），
// 这些字段原样挂在记录上，序列化时合并回顶层对象，导出/持久化都不丢
type Extra map[string]json.RawMessage

// jsonKeys 取结构体各字段的 json key（跳过 "-"）
func jsonKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

// unmarshalWithExtra 反序列化到 v，并把结构体没有的 key 收进 Extra
func unmarshalWithExtra(data []byte, v any) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range jsonKeys(reflect.TypeOf(v).Elem()) {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return Extra(raw), nil
}

// marshalWithExtra 序列化 v 并把 Extra 合并回顶层；结构体字段优先
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, exists := merged[k]; !exists {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}

// 每个实体各配一个别名类型，避免 (Un)MarshalJSON 自递归

type customerAlias Customer

// UnmarshalJSON 保留未建模字段
func (c *Customer) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*customerAlias)(c))
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// MarshalJSON 合并未建模字段
func (c Customer) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(customerAlias(c), c.Extra)
}

type supplierAlias Supplier

func (s *Supplier) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*supplierAlias)(s))
	if err != nil {
		return err
	}
	s.Extra = extra
	return nil
}

func (s Supplier) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(supplierAlias(s), s.Extra)
}

type dealAlias Deal

func (d *Deal) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*dealAlias)(d))
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

func (d Deal) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(dealAlias(d), d.Extra)
}

type activityAlias Activity

func (a *Activity) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*activityAlias)(a))
	if err != nil {
		return err
	}
	a.Extra = extra
	return nil
}

func (a Activity) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(activityAlias(a), a.Extra)
}

type campaignAlias Campaign

func (c *Campaign) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*campaignAlias)(c))
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

func (c Campaign) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(campaignAlias(c), c.Extra)
}

type productAlias Product

func (p *Product) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*productAlias)(p))
	if err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(productAlias(p), p.Extra)
}
