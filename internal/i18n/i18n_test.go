package i18n

import (
	"context"
	"testing"

	"crm_dev_v1_202601/pkg/storage"
)

func newTestTranslator(t *testing.T) (*Translator, storage.BlobStore) {
	t.Helper()
	blob := storage.NewMemoryStore()
	return New(context.Background(), blob), blob
}

func TestT_LookupAndInterpolation(t *testing.T) {
	tr, _ := newTestTranslator(t)

	if got := tr.T("customers.title", nil); got != "Customers" {
		t.Errorf("customers.title = %q", got)
	}
	got := tr.T("common.logged_in_as", map[string]any{"username": "Jane", "role": "Admin"})
	if got != "Logged in as Jane (Admin)" {
		t.Errorf("插值结果 = %q", got)
	}
}

func TestT_MissingKeyFallsBackToKey(t *testing.T) {
	tr, _ := newTestTranslator(t)
	if got := tr.T("no.such.key", nil); got != "no.such.key" {
		t.Errorf("缺失 key 应原样返回, got %q", got)
	}
}

func TestT_ZhFallsBackToEnglish(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTranslator(t)
	tr.ChangeLanguage(ctx, "zh")

	if got := tr.T("customers.title", nil); got != "客户" {
		t.Errorf("zh customers.title = %q", got)
	}
	// zh 表没有 detail 子节，回落英文
	if got := tr.T("customers.detail.gemini_summary", nil); got != "Gemini AI Summary" {
		t.Errorf("缺失中文文案应回落英文, got %q", got)
	}
}

func TestChangeLanguage_PersistsAndRejectsUnknown(t *testing.T) {
	ctx := context.Background()
	tr, blob := newTestTranslator(t)

	tr.ChangeLanguage(ctx, "zh")
	if tr.Language() != "zh" {
		t.Errorf("语言 = %s, want zh", tr.Language())
	}
	// 重开恢复
	tr2 := New(ctx, blob)
	if tr2.Language() != "zh" {
		t.Errorf("恢复后语言 = %s, want zh", tr2.Language())
	}

	tr.ChangeLanguage(ctx, "fr")
	if tr.Language() != "zh" {
		t.Errorf("未知语言不应生效, got %s", tr.Language())
	}
}

func TestGetLabel_CustomOverridesDefault(t *testing.T) {
	ctx := context.Background()
	tr, blob := newTestTranslator(t)

	if got := tr.GetLabel("customers.title", "Fallback"); got != "Customers" {
		t.Errorf("默认标签 = %q", got)
	}

	tr.SetCustomLabel(ctx, "customers.title", "Key Accounts")
	if got := tr.GetLabel("customers.title", ""); got != "Key Accounts" {
		t.Errorf("自定义标签 = %q", got)
	}

	// 自定义标签跨会话保留
	tr2 := New(ctx, blob)
	if got := tr2.GetLabel("customers.title", ""); got != "Key Accounts" {
		t.Errorf("恢复后标签 = %q", got)
	}

	tr.ResetCustomLabels(ctx)
	if got := tr.GetLabel("customers.title", ""); got != "Customers" {
		t.Errorf("清空后标签 = %q", got)
	}
}

func TestGetLabel_FallbackChain(t *testing.T) {
	tr, _ := newTestTranslator(t)
	if got := tr.GetLabel("no.such.key", "My Fallback"); got != "My Fallback" {
		t.Errorf("无翻译时应用 fallback, got %q", got)
	}
	if got := tr.GetLabel("no.such.key", ""); got != "no.such.key" {
		t.Errorf("无 fallback 时原样返回 key, got %q", got)
	}
}
