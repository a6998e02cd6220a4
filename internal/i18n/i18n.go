// Package i18n provides the notepad's message catalogs. Simplified
// Chinese is the primary locale; English is the fallback. Lookup is by
// message key, and catalog selection uses BCP 47 matching so config
// values like "zh", "zh-Hans-CN" or "en-US" all resolve sensibly.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Message keys. UI and controller code refer to these, never to
// literal strings.
const (
	MsgReady          = "ready"
	MsgUntitled       = "untitled"
	MsgModified       = "modified"
	MsgReadOnly       = "read_only"
	MsgOpened         = "opened"
	MsgSaved          = "saved"
	MsgSaveFailed     = "save_failed"
	MsgOpenFailed     = "open_failed"
	MsgNewDocument    = "new_document"
	MsgFindPrompt     = "find_prompt"
	MsgReplacePrompt  = "replace_prompt"
	MsgGotoPrompt     = "goto_prompt"
	MsgSaveAsPrompt   = "save_as_prompt"
	MsgMatchCounter   = "match_counter"
	MsgNoMatches      = "no_matches"
	MsgInvalidQuery   = "invalid_query"
	MsgReplacedOne    = "replaced_one"
	MsgReplacedAll    = "replaced_all"
	MsgStaleMatch     = "stale_match"
	MsgCaseSensitive  = "case_sensitive"
	MsgWholeWord      = "whole_word"
	MsgUndone         = "undone"
	MsgNothingToUndo  = "nothing_to_undo"
	MsgUnsavedChanges = "unsaved_changes"
	MsgConfigReloaded = "config_reloaded"
	MsgLine           = "line"
	MsgColumn         = "column"
)

var zhHans = map[string]string{
	MsgReady:          "就绪",
	MsgUntitled:       "无标题",
	MsgModified:       "已修改",
	MsgReadOnly:       "只读",
	MsgOpened:         "已打开 %s",
	MsgSaved:          "已保存 %s",
	MsgSaveFailed:     "保存失败: %v",
	MsgOpenFailed:     "打开失败: %v",
	MsgNewDocument:    "新建文档",
	MsgFindPrompt:     "查找: ",
	MsgReplacePrompt:  "替换为: ",
	MsgGotoPrompt:     "转到行: ",
	MsgSaveAsPrompt:   "另存为: ",
	MsgMatchCounter:   "第 %d 项，共 %d 项",
	MsgNoMatches:      "未找到 %q",
	MsgInvalidQuery:   "无效的搜索内容: %v",
	MsgReplacedOne:    "已替换 1 处",
	MsgReplacedAll:    "已替换 %d 处",
	MsgStaleMatch:     "文档已更改，请重新搜索",
	MsgCaseSensitive:  "区分大小写",
	MsgWholeWord:      "全字匹配",
	MsgUndone:         "已撤销",
	MsgNothingToUndo:  "没有可撤销的操作",
	MsgUnsavedChanges: "文档尚未保存，再按一次退出",
	MsgConfigReloaded: "配置已重新加载",
	MsgLine:           "行 %d",
	MsgColumn:         "列 %d",
}

var en = map[string]string{
	MsgReady:          "Ready",
	MsgUntitled:       "Untitled",
	MsgModified:       "Modified",
	MsgReadOnly:       "Read-only",
	MsgOpened:         "Opened %s",
	MsgSaved:          "Saved %s",
	MsgSaveFailed:     "Save failed: %v",
	MsgOpenFailed:     "Open failed: %v",
	MsgNewDocument:    "New document",
	MsgFindPrompt:     "Find: ",
	MsgReplacePrompt:  "Replace with: ",
	MsgGotoPrompt:     "Go to line: ",
	MsgSaveAsPrompt:   "Save as: ",
	MsgMatchCounter:   "Match %d of %d",
	MsgNoMatches:      "No matches for %q",
	MsgInvalidQuery:   "Invalid search input: %v",
	MsgReplacedOne:    "Replaced 1 occurrence",
	MsgReplacedAll:    "Replaced %d occurrences",
	MsgStaleMatch:     "Document changed, search again",
	MsgCaseSensitive:  "Case sensitive",
	MsgWholeWord:      "Whole word",
	MsgUndone:         "Undone",
	MsgNothingToUndo:  "Nothing to undo",
	MsgUnsavedChanges: "Unsaved changes, press again to quit",
	MsgConfigReloaded: "Configuration reloaded",
	MsgLine:           "Ln %d",
	MsgColumn:         "Col %d",
}

// supported lists catalogs in preference order. The first entry is the
// matcher's fallback.
var supported = []language.Tag{
	language.SimplifiedChinese,
	language.English,
}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[string]string{
	language.SimplifiedChinese: zhHans,
	language.English:           en,
}

// Translator resolves message keys against a matched catalog.
type Translator struct {
	tag     language.Tag
	catalog map[string]string
}

// New builds a Translator for the given BCP 47 language string.
// Unrecognized values fall back to Simplified Chinese.
func New(lang string) *Translator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.SimplifiedChinese
	}
	_, idx, _ := matcher.Match(tag)
	matched := supported[idx]
	return &Translator{tag: matched, catalog: catalogs[matched]}
}

// Tag reports the matched language tag.
func (t *Translator) Tag() language.Tag { return t.tag }

// T looks up key and formats it with args. Missing keys fall through
// to the English catalog and finally to the key itself, so a typo
// never renders a blank status line.
func (t *Translator) T(key string, args ...any) string {
	format, ok := t.catalog[key]
	if !ok {
		if format, ok = en[key]; !ok {
			format = key
		}
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
