package suggestions_test

import (
	"testing"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/suggestions"
)

func TestClassifyKnownTokens(t *testing.T) {
	tests := []struct {
		token     string
		wantClass suggestions.Class
		wantLabel string
	}{
		{suggestions.TokenSpelling, suggestions.ClassError, "تصحيح إملائي"},
		{suggestions.TokenPunctuation, suggestions.ClassWarning, "علامات الترقيم"},
		{suggestions.TokenStyle, suggestions.ClassInfo, "الأسلوب الأكاديمي"},
		{suggestions.TokenTerminology, suggestions.ClassInfo, "المصطلحات الأكاديمية"},
		{suggestions.TokenCitation, suggestions.ClassWarning, "تنسيق المراجع"},
		{suggestions.TokenVoice, suggestions.ClassHint, "المبني للمعلوم"},
		{suggestions.TokenComplexity, suggestions.ClassHint, "تبسيط الجمل"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := suggestions.Classify(tt.token)
			if got.Class != tt.wantClass {
				t.Errorf("Class = %q, want %q", got.Class, tt.wantClass)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if !suggestions.Known(tt.token) {
				t.Errorf("Known(%q) = false, want true", tt.token)
			}
		})
	}
}

func TestClassifyUnknownTokenFallsBack(t *testing.T) {
	tokens := []string{"grammar_v2", "", "SPELLING", "تشكيل"}

	for _, token := range tokens {
		got := suggestions.Classify(token)
		if got.Class != suggestions.ClassNeutral {
			t.Errorf("Classify(%q).Class = %q, want neutral", token, got.Class)
		}
		if got.Label != token {
			t.Errorf("Classify(%q).Label = %q, want raw token", token, got.Label)
		}
		if suggestions.Known(token) {
			t.Errorf("Known(%q) = true, want false", token)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for _, token := range []string{suggestions.TokenSpelling, "unknown"} {
		first := suggestions.Classify(token)
		for range 5 {
			if got := suggestions.Classify(token); got != first {
				t.Fatalf("Classify(%q) unstable: %+v vs %+v", token, got, first)
			}
		}
	}
}
