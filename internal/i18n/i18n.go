// Package i18n 本地化与标签收集器
// 静态嵌套字典 + {{name}} 插值 + 自定义标签覆盖；
// 语言与自定义标签通过 blob 适配层持久化，登出不清除
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"crm_dev_v1_202601/pkg/storage"
)

// 持久化 key
const (
	KeyLanguage     = "language"
	KeyCustomLabels = "customLabels"
)

// Translator 翻译器
type Translator struct {
	blob         storage.BlobStore
	lang         string
	customLabels map[string]string
}

// New 创建翻译器，从持久化层恢复语言与自定义标签
func New(ctx context.Context, blob storage.BlobStore) *Translator {
	t := &Translator{blob: blob, lang: "en", customLabels: map[string]string{}}

	if data, ok, err := blob.Load(ctx, KeyLanguage); err == nil && ok {
		var lang string
		if json.Unmarshal(data, &lang) == nil {
			if _, exists := catalogs[lang]; exists {
				t.lang = lang
			}
		}
	}
	if data, ok, err := blob.Load(ctx, KeyCustomLabels); err == nil && ok {
		var labels map[string]string
		if json.Unmarshal(data, &labels) == nil && labels != nil {
			t.customLabels = labels
		}
	}
	return t
}

// Language 当前语言
func (t *Translator) Language() string { return t.lang }

// ChangeLanguage 切换语言并持久化
func (t *Translator) ChangeLanguage(ctx context.Context, lang string) {
	if _, ok := catalogs[lang]; !ok {
		log.Printf("[i18n] 不支持的语言 %s，保持 %s", lang, t.lang)
		return
	}
	t.lang = lang
	t.persist(ctx, KeyLanguage, lang)
}

// T 按 key 取文案并插值；key 不存在时回落英文，再不存在原样返回 key
func (t *Translator) T(key string, args map[string]any) string {
	text, ok := lookup(catalogs[t.lang], key)
	if !ok && t.lang != "en" {
		text, ok = lookup(catalogs["en"], key)
	}
	if !ok {
		return key
	}
	return interpolate(text, args)
}

// GetLabel 取显示标签：自定义标签优先于默认翻译，都没有时用 fallback
func (t *Translator) GetLabel(key, fallback string) string {
	if label, ok := t.customLabels[key]; ok && label != "" {
		return label
	}
	if text, ok := lookup(catalogs[t.lang], key); ok {
		return text
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// SetCustomLabel 设置自定义标签并持久化
func (t *Translator) SetCustomLabel(ctx context.Context, key, label string) {
	t.customLabels[key] = label
	t.persist(ctx, KeyCustomLabels, t.customLabels)
}

// ResetCustomLabels 清空自定义标签
func (t *Translator) ResetCustomLabels(ctx context.Context) {
	t.customLabels = map[string]string{}
	if err := t.blob.Delete(ctx, KeyCustomLabels); err != nil {
		log.Printf("[i18n] 清除自定义标签失败: %v", err)
	}
}

func (t *Translator) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[i18n] 序列化 %s 失败: %v", key, err)
		return
	}
	if err := t.blob.Save(ctx, key, data); err != nil {
		log.Printf("[i18n] 持久化 %s 失败: %v", key, err)
	}
}

// lookup 按点分路径在嵌套字典里找文案
func lookup(catalog map[string]any, key string) (string, bool) {
	if catalog == nil {
		return "", false
	}
	parts := strings.Split(key, ".")
	cur := catalog
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			text, ok := v.(string)
			return text, ok
		}
		next, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		cur = next
	}
	return "", false
}

// interpolate 替换 {{name}} 占位符
func interpolate(text string, args map[string]any) string {
	for name, val := range args {
		text = strings.ReplaceAll(text, "{{"+name+"}}", fmt.Sprint(val))
	}
	return text
}
