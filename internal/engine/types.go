package engine

// FileMetadata describes the source document as reported by the engine's
// extraction step. FileType is always present; the remaining fields depend on
// what the document itself declares.
type FileMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Creator   string `json:"creator,omitempty"`
	FileType  string `json:"file_type"`
	PageCount *int   `json:"page_count,omitempty"`
}

// ExtractionStats summarizes the extracted text.
type ExtractionStats struct {
	TotalWords      int `json:"total_words"`
	TotalCharacters int `json:"total_characters"`
	Pages           int `json:"pages,omitempty"`
	Paragraphs      int `json:"paragraphs,omitempty"`
}

// Extraction is the successful result of an upload call: the extracted text
// plus document metadata.
type Extraction struct {
	Text     string          `json:"text"`
	Metadata *FileMetadata   `json:"metadata"`
	Stats    ExtractionStats `json:"stats"`
}

// Readability is the engine's coarse judgment of how hard the text reads.
type Readability struct {
	Complexity     Complexity `json:"complexity"`
	Recommendation string     `json:"recommendation"`
}

// Complexity is a closed severity scale for readability.
type Complexity string

// Complexity levels as emitted by the engine.
const (
	ComplexitySimple   Complexity = "بسيط"
	ComplexityModerate Complexity = "متوسط"
	ComplexityComplex  Complexity = "معقد"
)

// Analysis holds supplementary text statistics produced by the analyze call.
type Analysis struct {
	WordCount           int         `json:"word_count"`
	CharacterCount      int         `json:"character_count"`
	SentenceCount       int         `json:"sentence_count"`
	ParagraphCount      int         `json:"paragraph_count"`
	ArabicCharacters    int         `json:"arabic_characters"`
	EnglishCharacters   int         `json:"english_characters"`
	Numbers             int         `json:"numbers"`
	AvgWordsPerSentence float64     `json:"avg_words_per_sentence"`
	AvgCharsPerWord     float64     `json:"avg_chars_per_word"`
	Readability         Readability `json:"readability"`
}

// Suggestion is one correction opportunity identified by the engine. The
// replacement may arrive in either Improved or Suggestion; Improved wins when
// both are present.
type Suggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Original    string `json:"original,omitempty"`
	Improved    string `json:"improved,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// Replacement returns the suggested replacement text, preferring Improved
// over Suggestion. Empty when neither field is set.
func (s *Suggestion) Replacement() string {
	if s.Improved != "" {
		return s.Improved
	}
	return s.Suggestion
}

// ProofreadStats aggregates a proofreading pass.
type ProofreadStats struct {
	OriginalWords    int      `json:"original_words"`
	ProcessedWords   int      `json:"processed_words"`
	SuggestionsCount int      `json:"suggestions_count"`
	ImprovementTypes []string `json:"improvement_types,omitempty"`
}

// ProofreadResult is the complete outcome of a proofreading pass. Suggestion
// order is significant: it is the display and report order.
type ProofreadResult struct {
	OriginalText  string         `json:"original_text"`
	CorrectedText string         `json:"corrected_text"`
	Suggestions   []Suggestion   `json:"suggestions"`
	Stats         ProofreadStats `json:"stats"`
}

type uploadEnvelope struct {
	Success  bool            `json:"success"`
	Text     string          `json:"text"`
	Metadata *FileMetadata   `json:"metadata"`
	Stats    ExtractionStats `json:"stats"`
	Error    string          `json:"error"`
}

type analyzeEnvelope struct {
	Success  bool      `json:"success"`
	Analysis *Analysis `json:"analysis"`
	Error    string    `json:"error"`
}

type proofreadEnvelope struct {
	Success       bool           `json:"success"`
	OriginalText  string         `json:"original_text"`
	CorrectedText string         `json:"corrected_text"`
	Suggestions   []Suggestion   `json:"suggestions"`
	Stats         ProofreadStats `json:"stats"`
	Error         string         `json:"error"`
}

type textRequest struct {
	Text string `json:"text"`
}
