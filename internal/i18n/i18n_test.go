package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNewMatching(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"zh-CN", language.SimplifiedChinese},
		{"zh", language.SimplifiedChinese},
		{"zh-Hans-CN", language.SimplifiedChinese},
		{"en", language.English},
		{"en-US", language.English},
		{"fr", language.SimplifiedChinese},
		{"not a tag", language.SimplifiedChinese},
		{"", language.SimplifiedChinese},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := New(tt.lang).Tag(); got != tt.want {
				t.Errorf("New(%q).Tag() = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	zh := New("zh-CN")
	if got := zh.T(MsgReady); got != "就绪" {
		t.Errorf("zh ready = %q", got)
	}
	if got := zh.T(MsgMatchCounter, 2, 7); got != "第 2 项，共 7 项" {
		t.Errorf("zh match counter = %q", got)
	}

	eng := New("en-GB")
	if got := eng.T(MsgReplacedAll, 3); got != "Replaced 3 occurrences" {
		t.Errorf("en replaced all = %q", got)
	}
}

func TestTranslateMissingKey(t *testing.T) {
	zh := New("zh-CN")
	if got := zh.T("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q, want key itself", got)
	}
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range zhHans {
		if _, ok := en[key]; !ok {
			t.Errorf("key %q missing from English catalog", key)
		}
	}
	for key := range en {
		if _, ok := zhHans[key]; !ok {
			t.Errorf("key %q missing from Chinese catalog", key)
		}
	}
}
