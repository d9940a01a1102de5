package deck

// Deck colors.
const (
	colorDarkBlue = "002060"
	colorBlack    = "000000"
	colorGray     = "646464"
)

// Rules bundles the language-dependent pieces of deck assembly: fonts,
// fixed strings, the picture-only slide topics and the contact address
// blocks.
type Rules struct {
	Language string

	TitleFont string
	BodyFont  string

	TitleSize     float64
	CoverSize     float64
	SubtitleSize  float64
	BodySizeLarge float64
	BodySizeSmall float64

	CaptionPrefix string

	ContactTitle    string
	DisclaimerTitle string
	DisclaimerFont  string
	DisclaimerSize  float64

	// PictureTopics are the picture-only slides appended after the content
	// slides, in order. CaptionTopic is the one that also gets filename
	// annotations.
	PictureTopics []string
	CaptionTopic  string

	Addresses map[int]string
}

// ChineseRules is the default deck language.
func ChineseRules() Rules {
	return Rules{
		Language:        "cn",
		TitleFont:       "华文细黑",
		BodyFont:        "Microsoft YaHei",
		TitleSize:       29.1,
		CoverSize:       44,
		SubtitleSize:    35,
		BodySizeLarge:   16,
		BodySizeSmall:   14,
		CaptionPrefix:   "资料来源：",
		ContactTitle:    "联系我们",
		DisclaimerTitle: "免责声明",
		DisclaimerFont:  "华文细黑",
		DisclaimerSize:  12,
		PictureTopics:   []string{"个债精选", "个股精选", "资金流"},
		CaptionTopic:    "资金流",
		Addresses:       contactAddressesCN,
	}
}

// EnglishRules drives the English template variant.
func EnglishRules() Rules {
	return Rules{
		Language:     "en",
		TitleFont:    "华文细黑",
		BodyFont:     "Arial",
		TitleSize:    29.1,
		CoverSize:    44,
		SubtitleSize: 35,
		// English body text does not tier by density; it always renders
		// at the smaller size.
		BodySizeLarge:   14,
		BodySizeSmall:   14,
		CaptionPrefix:   "Source: ",
		ContactTitle:    "Contact Us",
		DisclaimerTitle: "Disclaimer",
		DisclaimerFont:  "Arial",
		DisclaimerSize:  9,
		PictureTopics:   []string{"Bond Picks", "Stock Picks", "Fund Flow"},
		CaptionTopic:    "Fund Flow",
		Addresses:       contactAddressesEN,
	}
}

// RulesFor maps a language code to its rules, defaulting to Chinese.
func RulesFor(language string) Rules {
	if language == "en" {
		return EnglishRules()
	}
	return ChineseRules()
}
