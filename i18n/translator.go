package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "index").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "container_conflict":
			msg = "キーの構造が既存のコンテナと矛盾しています"
		case "invalid_key":
			msg = "キーが不正です"
		case "index_out_of_range":
			msg = "配列のインデックスが上限を超えています"
		case "invalid_schema":
			msg = "スキーマ定義が不正です"
		case "parse_error":
			msg = "解析エラー"
		case "duplicate_key":
			msg = "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "container_conflict":
			msg = "key conflicts with an existing container"
		case "invalid_key":
			msg = "invalid key"
		case "index_out_of_range":
			msg = "array index out of range"
		case "invalid_schema":
			msg = "invalid schema definition"
		case "parse_error":
			msg = "parse error"
		case "duplicate_key":
			msg = "duplicate key"
		}
	}
	if msg == "" {
		return code
	}
	if k := data["key"]; k != "" {
		msg += ": " + k
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	lang = strings.ToLower(lang)
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
