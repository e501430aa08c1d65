// Package suggestions classifies proofreading suggestion categories for
// presentation. The engine tags every suggestion with a category token; this
// package maps each token to a presentation class and an Arabic label.
package suggestions

// Class is the presentation treatment a suggestion category receives.
type Class string

// Presentation classes, ordered from most to least severe.
const (
	ClassError   Class = "error"
	ClassWarning Class = "warning"
	ClassInfo    Class = "info"
	ClassHint    Class = "hint"
	ClassNeutral Class = "neutral"
)

// Category pairs a presentation class with a display label.
type Category struct {
	Class Class  `json:"class"`
	Label string `json:"label"`
}

// Category tokens produced by the proofreading engine.
const (
	TokenSpelling    = "spelling"
	TokenPunctuation = "punctuation"
	TokenStyle       = "style"
	TokenTerminology = "terminology"
	TokenCitation    = "citation"
	TokenVoice       = "voice"
	TokenComplexity  = "complexity"
)

var categories = map[string]Category{
	TokenSpelling:    {Class: ClassError, Label: "تصحيح إملائي"},
	TokenPunctuation: {Class: ClassWarning, Label: "علامات الترقيم"},
	TokenStyle:       {Class: ClassInfo, Label: "الأسلوب الأكاديمي"},
	TokenTerminology: {Class: ClassInfo, Label: "المصطلحات الأكاديمية"},
	TokenCitation:    {Class: ClassWarning, Label: "تنسيق المراجع"},
	TokenVoice:       {Class: ClassHint, Label: "المبني للمعلوم"},
	TokenComplexity:  {Class: ClassHint, Label: "تبسيط الجمل"},
}

// Classify maps a category token to its presentation category. Unrecognized
// tokens fall back to a neutral class with the raw token as the label, so
// categories added to the engine later degrade gracefully instead of failing.
func Classify(token string) Category {
	if c, ok := categories[token]; ok {
		return c
	}
	return Category{Class: ClassNeutral, Label: token}
}

// Known reports whether the token has a defined category.
func Known(token string) bool {
	_, ok := categories[token]
	return ok
}
