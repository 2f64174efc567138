package output

import (
	"strconv"

	"github.com/popprobe/population-simulator/pkg/decimal"
	shopspring "github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

var supportedLanguages = []language.Tag{language.English, language.Chinese}

var languageMatcher = language.NewMatcher(supportedLanguages)

// ResolveLanguage maps a user preference such as "zh-CN" or "en_US" onto a supported tag.
// Unknown or empty preferences resolve to English.
func ResolveLanguage(pref string) language.Tag {
	if pref == "" {
		return language.English
	}
	_, idx := language.MatchStrings(languageMatcher, pref)
	return supportedLanguages[idx]
}

func isChinese(tag language.Tag) bool {
	base, _ := tag.Base()
	zh, _ := language.Chinese.Base()
	return base == zh
}

// FormatPopulation renders a figure given in thousands with the largest
// display unit it reaches.
func FormatPopulation(thousands float64, lang language.Tag) string {
	q := decimal.NewQuantity(thousands)
	zh := isChinese(lang)
	switch {
	case q.AtLeastHundredMillion():
		if zh {
			return q.HundredMillions().StringFixed(2) + "亿"
		}
		return q.HundredMillions().StringFixed(2) + " 100M"
	case q.AtLeastTenThousand():
		if zh {
			return q.TenThousands().StringFixed(0) + "万"
		}
		return q.TenThousands().StringFixed(0) + " 10k"
	default:
		if zh {
			return q.String() + "千"
		}
		return q.String() + "k"
	}
}

// FormatPercentage formats a value already expressed in percent with 2 decimals.
func FormatPercentage(pct float64) string {
	return shopspring.NewFromFloat(pct).StringFixed(2) + "%"
}

// fixed renders v with the given number of decimals without float formatting noise.
func fixed(v float64, places int32) string {
	return shopspring.NewFromFloat(v).StringFixed(places)
}

func intToString(v int) string { return strconv.Itoa(v) }
