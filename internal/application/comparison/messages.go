package comparison

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Audit log line keys. The key doubles as the English text.
const (
	msgUnknownItem     = "No merchandise with serial number %s"
	msgFoundWithOrder  = "Item %s found in invoice %s and purchase order %s"
	msgFoundInvoice    = "Item %s found in invoice %s"
	msgNoSalesRecord   = "No sales record for item %s"
	msgNoPurchaseInfo  = "No purchase information or merchandise details for item %s"
	msgNotComputable   = "Margin of item %s is not computable: %s"
	msgOverallNotSound = "Overall margin is not computable: %s"
)

// supportedLanguages lists audit log languages, the first one is the default.
var supportedLanguages = []language.Tag{language.Chinese, language.English}

var languageMatcher = language.NewMatcher(supportedLanguages)

func init() {
	lines := []struct {
		key string
		zh  string
	}{
		{msgUnknownItem, "不存在序列号为【%s】的商品"},
		{msgFoundWithOrder, "商品【%s】于形式发票【%s】和采购合同【%s】中被搜索到"},
		{msgFoundInvoice, "商品【%s】于形式发票【%s】中被搜索到"},
		{msgNoSalesRecord, "没有序列号为【%s】的商品记录"},
		{msgNoPurchaseInfo, "未找到商品【%s】的采购信息或商品详情"},
		{msgNotComputable, "商品【%s】的毛利率无法计算：%s"},
		{msgOverallNotSound, "整体毛利率无法计算：%s"},
	}
	for _, l := range lines {
		_ = message.SetString(language.Chinese, l.key, l.zh)
		_ = message.SetString(language.English, l.key, l.key)
	}
}

// printerFor returns the audit log printer for an Accept-Language style
// value. Unknown or empty values fall back to Chinese.
func printerFor(lang string) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return message.NewPrinter(supportedLanguages[0])
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		index = 0
	}
	return message.NewPrinter(supportedLanguages[index])
}
