// Package reports implements report synthesis and the generated-report
// registry. Synthesis is a pure function over a proofreading result; the
// registry persists each generated report with its artifact in blob storage.
package reports

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Bashar-1216/arabic-academic-proofreader/internal/engine"
	"github.com/Bashar-1216/arabic-academic-proofreader/internal/suggestions"
)

// ArtifactPrefix is the fixed leading portion of every report filename.
const ArtifactPrefix = "تقرير_التدقيق"

const unspecified = "غير محدد"

// ArtifactName builds the report filename for the given moment:
// the fixed prefix, the calendar date, and a .txt extension.
func ArtifactName(now time.Time) string {
	return fmt.Sprintf("%s_%s.txt", ArtifactPrefix, now.Format("2006-01-02"))
}

// Synthesize renders a proofreading result and optional file metadata into
// the downloadable report text. It is deterministic: identical inputs yield
// byte-identical output, and neither input is mutated. Section order is
// fixed; absent metadata fields render as an explicit placeholder.
func Synthesize(result *engine.ProofreadResult, meta *engine.FileMetadata) string {
	var b strings.Builder

	writeHeader(&b)
	writeMetadata(&b, meta)
	writeStats(&b, result)
	writeSection(&b, "النص الأصلي", result.OriginalText)
	writeSection(&b, "النص المصحح", result.CorrectedText)
	writeChanges(&b, result)
	writeSuggestions(&b, result.Suggestions)

	return b.String()
}

func writeHeader(b *strings.Builder) {
	const title = "تقرير التدقيق اللغوي الأكاديمي"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
}

func writeMetadata(b *strings.Builder, meta *engine.FileMetadata) {
	b.WriteString("معلومات الملف:\n")

	title, author, fileType, pages := unspecified, unspecified, unspecified, unspecified
	if meta != nil {
		if meta.Title != "" {
			title = meta.Title
		}
		if meta.Author != "" {
			author = meta.Author
		}
		if meta.FileType != "" {
			fileType = meta.FileType
		}
		if meta.PageCount != nil {
			pages = strconv.Itoa(*meta.PageCount)
		}
	}

	fmt.Fprintf(b, "- العنوان: %s\n", title)
	fmt.Fprintf(b, "- المؤلف: %s\n", author)
	fmt.Fprintf(b, "- نوع الملف: %s\n", fileType)
	fmt.Fprintf(b, "- عدد الصفحات: %s\n\n", pages)
}

func writeStats(b *strings.Builder, result *engine.ProofreadResult) {
	b.WriteString("إحصائيات التدقيق:\n")
	fmt.Fprintf(b, "- عدد الكلمات الأصلية: %d\n", result.Stats.OriginalWords)
	fmt.Fprintf(b, "- عدد الكلمات بعد المعالجة: %d\n", result.Stats.ProcessedWords)
	fmt.Fprintf(b, "- عدد الاقتراحات: %d\n\n", result.Stats.SuggestionsCount)
}

func writeSection(b *strings.Builder, heading, body string) {
	b.WriteString(heading + ":\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString(body + "\n\n")
}

// writeChanges summarizes the character-level difference between the
// original and corrected texts.
func writeChanges(b *strings.Builder, result *engine.ProofreadResult) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(result.OriginalText, result.CorrectedText, false)

	var inserted, deleted int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			deleted += len([]rune(d.Text))
		}
	}

	b.WriteString("ملخص التغييرات:\n")
	fmt.Fprintf(b, "- أحرف مضافة: %d\n", inserted)
	fmt.Fprintf(b, "- أحرف محذوفة: %d\n\n", deleted)
}

func writeSuggestions(b *strings.Builder, items []engine.Suggestion) {
	b.WriteString("الاقتراحات:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")

	if len(items) == 0 {
		b.WriteString("لا توجد اقتراحات\n")
		return
	}

	for i, s := range items {
		category := suggestions.Classify(s.Type)

		fmt.Fprintf(b, "%d. %s\n", i+1, s.Description)
		fmt.Fprintf(b, "   التصنيف: %s\n", category.Label)

		if s.Original != "" {
			fmt.Fprintf(b, "   الأصل: %s\n", s.Original)
		}
		if replacement := s.Replacement(); replacement != "" {
			fmt.Fprintf(b, "   الاقتراح: %s\n", replacement)
		}

		b.WriteString("\n")
	}
}
