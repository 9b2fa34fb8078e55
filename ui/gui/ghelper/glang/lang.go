package glang

import (
	"embed"
	"encoding/json"
	"errors"
)

//go:embed lang/*.json
var dictFS embed.FS

type LangType int

const (
	EN LangType = iota
	RU
	ZZ
)

var ErrUnsupportedLang = errors.New("unsupported lang")

func LangTypeByString(lang string) LangType {
	switch lang {
	case "en":
		return EN
	case "ru":
		return RU
	default:
	}
	return ZZ
}

func (t LangType) String() string {
	switch t {
	case EN:
		return "en"
	case RU:
		return "ru"
	default:
	}
	return ""
}

type GUILangWorker struct {
	lang LangType
	dict map[string]string
}

func NewGUILangWorker(lang string) (*GUILangWorker, error) {
	lw := &GUILangWorker{dict: make(map[string]string)}
	t := LangTypeByString(lang)
	if t == ZZ {
		return nil, ErrUnsupportedLang
	}
	if err := lw.SetLang(t); err != nil {
		return nil, err
	}
	return lw, nil
}

func (lw *GUILangWorker) GetLang() LangType {
	return lw.lang
}

func (lw *GUILangWorker) SetLang(l LangType) error {
	if l == ZZ {
		return ErrUnsupportedLang
	}
	data, err := dictFS.ReadFile("lang/" + l.String() + ".json")
	if err != nil {
		return err
	}
	dict := make(map[string]string)
	if err := json.Unmarshal(data, &dict); err != nil {
		return err
	}
	lw.lang = l
	lw.dict = dict
	return nil
}

// T returns the translation, or the key itself if it is missing
func (lw *GUILangWorker) T(key string) string {
	if v, ok := lw.dict[key]; ok {
		return v
	}
	return key
}
