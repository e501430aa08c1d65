package reports_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/reports"
)

func sampleResult() *engine.ProofreadResult {
	return &engine.ProofreadResult{
		OriginalText:  "هاذا البحث مهم",
		CorrectedText: "هذا البحث مهم",
		Suggestions: []engine.Suggestion{
			{
				Type:        "spelling",
				Description: "تصحيح كلمة شائعة الخطأ",
				Original:    "هاذا",
				Improved:    "هذا",
			},
			{
				Type:        "style",
				Description: "استخدام صيغة أكثر رسمية",
				Suggestion:  "يعد هذا البحث",
			},
		},
		Stats: engine.ProofreadStats{
			OriginalWords:    3,
			ProcessedWords:   3,
			SuggestionsCount: 2,
		},
	}
}

func sampleMetadata() *engine.FileMetadata {
	pages := 12
	return &engine.FileMetadata{
		Title:     "أثر التعلم النشط",
		Author:    "د. سارة",
		FileType:  "PDF",
		PageCount: &pages,
	}
}

func TestArtifactName(t *testing.T) {
	now := time.Date(2026, 3, 14, 22, 5, 0, 0, time.UTC)

	got := reports.ArtifactName(now)
	want := "تقرير_التدقيق_2026-03-14.txt"

	if got != want {
		t.Errorf("ArtifactName = %q, want %q", got, want)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	result := sampleResult()
	meta := sampleMetadata()

	first := reports.Synthesize(result, meta)
	for range 3 {
		if got := reports.Synthesize(result, meta); got != first {
			t.Fatal("Synthesize output differs across identical inputs")
		}
	}
}

func TestSynthesizeSectionOrder(t *testing.T) {
	text := reports.Synthesize(sampleResult(), sampleMetadata())

	sections := []string{
		"تقرير التدقيق اللغوي الأكاديمي",
		"معلومات الملف:",
		"إحصائيات التدقيق:",
		"النص الأصلي:",
		"النص المصحح:",
		"ملخص التغييرات:",
		"الاقتراحات:",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(text, section)
		if idx < 0 {
			t.Fatalf("section %q missing from report", section)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestSynthesizeMetadata(t *testing.T) {
	text := reports.Synthesize(sampleResult(), sampleMetadata())

	for _, want := range []string{
		"- العنوان: أثر التعلم النشط",
		"- المؤلف: د. سارة",
		"- نوع الملف: PDF",
		"- عدد الصفحات: 12",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestSynthesizeMissingMetadataUsesPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		meta *engine.FileMetadata
	}{
		{"nil metadata", nil},
		{"empty fields", &engine.FileMetadata{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := reports.Synthesize(sampleResult(), tt.meta)

			for _, want := range []string{
				"- العنوان: غير محدد",
				"- المؤلف: غير محدد",
				"- نوع الملف: غير محدد",
				"- عدد الصفحات: غير محدد",
			} {
				if !strings.Contains(text, want) {
					t.Errorf("report missing placeholder line %q", want)
				}
			}
		})
	}
}

func TestSynthesizeSuggestions(t *testing.T) {
	text := reports.Synthesize(sampleResult(), nil)

	if !strings.Contains(text, "1. تصحيح كلمة شائعة الخطأ") {
		t.Error("first suggestion not numbered from 1")
	}
	if !strings.Contains(text, "2. استخدام صيغة أكثر رسمية") {
		t.Error("second suggestion missing")
	}
	if !strings.Contains(text, "التصنيف: تصحيح إملائي") {
		t.Error("spelling category label missing")
	}
	if !strings.Contains(text, "الأصل: هاذا") {
		t.Error("original fragment missing")
	}
}

// The replacement line prefers the improved form when both candidate fields
// are present.
func TestSynthesizeImprovedWinsOverSuggestion(t *testing.T) {
	result := sampleResult()
	result.Suggestions = []engine.Suggestion{
		{
			Type:        "terminology",
			Description: "استبدال مصطلح",
			Original:    "الداتا",
			Improved:    "البيانات",
			Suggestion:  "المعطيات",
		},
	}

	text := reports.Synthesize(result, nil)

	if !strings.Contains(text, "الاقتراح: البيانات") {
		t.Error("improved form not used as replacement")
	}
	if strings.Contains(text, "المعطيات") {
		t.Error("suggestion field leaked despite improved form present")
	}
}

func TestSynthesizeNoSuggestions(t *testing.T) {
	result := sampleResult()
	result.Suggestions = nil

	text := reports.Synthesize(result, nil)

	if !strings.Contains(text, "لا توجد اقتراحات") {
		t.Error("empty suggestion list not reported")
	}
}

func TestSynthesizeDoesNotMutateInputs(t *testing.T) {
	result := sampleResult()
	meta := sampleMetadata()
	originalText := result.OriginalText
	title := meta.Title

	reports.Synthesize(result, meta)

	if result.OriginalText != originalText || meta.Title != title {
		t.Error("Synthesize mutated its inputs")
	}
}
