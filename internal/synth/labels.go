package synth

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"vida-fed/internal/api/dto"
)

const (
	fallbackCategory = "Misc"
	fallbackUnknown  = "Unknown"
)

var videoCategories = map[int]string{
	1:  "Music",
	2:  "Films",
	3:  "Vehicles",
	4:  "Art",
	5:  "Sports",
	6:  "Travels",
	7:  "Gaming",
	8:  "People",
	9:  "Comedy",
	10: "Entertainment",
	11: "News & Politics",
	12: "How To",
	13: "Education",
	14: "Activism",
	15: "Science & Technology",
	16: "Animals",
	17: "Kids",
	18: "Food",
}

var videoLicences = map[int]string{
	1: "Attribution",
	2: "Attribution - Share Alike",
	3: "Attribution - No Derivatives",
	4: "Attribution - Non Commercial",
	5: "Attribution - Non Commercial - Share Alike",
	6: "Attribution - Non Commercial - No Derivatives",
	7: "Public Domain Dedication",
}

var videoPrivacies = map[int]string{
	1: "Public",
	2: "Unlisted",
	3: "Private",
	4: "Internal",
	5: "Password protected",
}

var videoStates = map[int]string{
	1:  "Published",
	2:  "To transcode",
	3:  "To import",
	4:  "Waiting for livestream",
	5:  "Livestream ended",
	6:  "To move to an external storage",
	7:  "Transcoding failed",
	8:  "External storage move failed",
	9:  "To edit",
	10: "To move to file system",
	11: "Move to file system failed",
}

// 两字母代码之外的站点语言，以及与 CLDR 英文名不一致的展示名
var languageOverrides = map[string]string{
	// 手语
	"sgn": "Sign languages",
	"ase": "American Sign Language",
	"asq": "Austrian Sign Language",
	"sdl": "Saudi Arabian Sign Language",
	"bfi": "British Sign Language",
	"bzs": "Brazilian Sign Language",
	"csl": "Chinese Sign Language",
	"cse": "Czech Sign Language",
	"dsl": "Danish Sign Language",
	"fsl": "French Sign Language",
	"gsg": "German Sign Language",
	"pks": "Pakistan Sign Language",
	"jsl": "Japanese Sign Language",
	"sfs": "South African Sign Language",
	"swl": "Swedish Sign Language",
	"rsl": "Russian Sign Language",
	"fse": "Finnish Sign Language",

	"kab": "Kabyle",
	"gcf": "Guadeloupean Creole French",
	"lat": "Latin",
	"epo": "Esperanto",
	"tlh": "Klingon",
	"jbo": "Lojban",
	"avk": "Kotava",
	"zxx": "No linguistic content",
	"tok": "Toki Pona",

	"oc":          "Occitan",
	"el":          "Greek",
	"pt":          "Portuguese (Brazilian)",
	"pt-PT":       "Portuguese (Portugal)",
	"es":          "Spanish (Spain)",
	"es-419":      "Spanish (Latin America)",
	"zh-Hans":     "Simplified Chinese",
	"zh-Hant":     "Traditional Chinese",
	"ca-valencia": "Valencian",
}

var languageNamer = display.English.Languages()

// CategoryLabel 未知分类回落为 Misc
func CategoryLabel(id int) dto.Constant {
	return dto.Constant{ID: id, Label: lookup(videoCategories, id, fallbackCategory)}
}

func LicenceLabel(id int) dto.Constant {
	return dto.Constant{ID: id, Label: lookup(videoLicences, id, fallbackUnknown)}
}

func PrivacyLabel(id int) dto.Constant {
	return dto.Constant{ID: id, Label: lookup(videoPrivacies, id, fallbackUnknown)}
}

func StateLabel(id int) dto.Constant {
	return dto.Constant{ID: id, Label: lookup(videoStates, id, fallbackUnknown)}
}

// LanguageLabel 以 ISO-639 代码查英文名，空或无法识别时为 Unknown
func LanguageLabel(code string) dto.LanguageConstant {
	return dto.LanguageConstant{ID: code, Label: languageName(code)}
}

// ResolutionLabel 0 表示纯音频
func ResolutionLabel(height int) dto.Constant {
	if height == 0 {
		return dto.Constant{ID: 0, Label: "Audio"}
	}
	return dto.Constant{ID: height, Label: strconv.Itoa(height) + "p"}
}

func lookup(table map[int]string, id int, fallback string) string {
	if label, ok := table[id]; ok {
		return label
	}
	return fallback
}

// languageName 只认两字母基础语言代码与 languageOverrides 中的代码，地区/脚本变体不单独成名
func languageName(code string) string {
	if name, ok := languageOverrides[code]; ok {
		return name
	}
	if len(code) != 2 {
		return fallbackUnknown
	}
	base, err := language.ParseBase(code)
	if err != nil || base.String() != code {
		return fallbackUnknown
	}
	if name := languageNamer.Name(base); name != "" {
		return name
	}
	return fallbackUnknown
}
