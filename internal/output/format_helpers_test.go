package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatPopulation(t *testing.T) {
	cases := []struct {
		thousands float64
		lang      language.Tag
		want      string
	}{
		{141000, language.Chinese, "1.41亿"},
		{141000, language.English, "1.41 100M"},
		{100000, language.Chinese, "1.00亿"},
		{99999, language.Chinese, "10000万"},
		{1234, language.Chinese, "123万"},
		{1234, language.English, "123 10k"},
		{100, language.English, "10 10k"},
		{99.4, language.Chinese, "99千"},
		{12, language.English, "12k"},
		{0, language.English, "0k"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPopulation(tc.thousands, tc.lang), "%v %v", tc.thousands, tc.lang)
	}
}

func TestResolveLanguage(t *testing.T) {
	assert.True(t, isChinese(ResolveLanguage("zh-CN")))
	assert.True(t, isChinese(ResolveLanguage("zh")))
	assert.False(t, isChinese(ResolveLanguage("en-US")))
	assert.False(t, isChinese(ResolveLanguage("")))
	assert.False(t, isChinese(ResolveLanguage("fr")))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "15.11%", FormatPercentage(15.1112640995))
	assert.Equal(t, "0.00%", FormatPercentage(0))
}

func TestFixedAndIntToString(t *testing.T) {
	assert.Equal(t, "1014.906", fixed(1014.9056070381158, 3))
	assert.Equal(t, "42", intToString(42))
}
