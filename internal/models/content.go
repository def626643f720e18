package models

// ClozeTest is one gapped-text exercise. Text contains positional gap markers
// of the form (N); answers[N-1] holds the expected word for gap N.
type ClozeTest struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Answers   []string `json:"answers"`
	WordTypes []string `json:"wordTypes,omitempty"`
}

// ClozeDocument is the open-cloze content file
type ClozeDocument struct {
	Tests []ClozeTest `json:"tests"`
}

// WordPartExercise is a single prefix or suffix formation item
type WordPartExercise struct {
	Prefix       string `json:"prefix,omitempty"`
	Base         string `json:"base"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Answer       string `json:"answer"`
}

// PosExercise is a part-of-speech multiple-choice item. Correct holds the
// display text of the right option, matching how the content is authored.
type PosExercise struct {
	Sentence string   `json:"sentence"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// FormationTest is a gapped word-formation test graded as free text
type FormationTest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	BaseWords    []string `json:"baseWords"`
	Answers      []string `json:"answers"`
	PosHints     []string `json:"posHints,omitempty"`
	Explanations []string `json:"explanations,omitempty"`
}

// FormationMCQTest is a gapped word-formation test graded by option index
type FormationMCQTest struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	BaseWords    []string   `json:"baseWords"`
	Options      [][]string `json:"options"`
	Answers      []int      `json:"answers"`
	Explanations []string   `json:"explanations,omitempty"`
}

// WordFormationDocument is the word-formation content file
type WordFormationDocument struct {
	PrefixExercises []WordPartExercise `json:"prefixExercises"`
	SuffixExercises []WordPartExercise `json:"suffixExercises"`
	PosExercises    []PosExercise      `json:"posExercises"`
	GuidedTest      *FormationTest     `json:"guidedTest"`
	McqTests        []FormationMCQTest `json:"mcqTests"`
	FullTests       []FormationTest    `json:"fullTests"`
}

// MCQuestion is one multiple-choice question; Answer is the correct option index
type MCQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// ShortQuestion is one short-answer question with a list of accepted answers
type ShortQuestion struct {
	Prompt   string   `json:"prompt"`
	Accepted []string `json:"accepted"`
}

// CategoryDocument drives one instance of the category quiz flow: intro pages,
// a multiple-choice quiz, a short-answer quiz, and an optional question bank
// served in shuffled batches.
type CategoryDocument struct {
	Name                  string          `json:"name"`
	IntroPages            []string        `json:"introPages"`
	MCQuiz                []MCQuestion    `json:"mcQuiz"`
	ShortQuestions        []ShortQuestion `json:"shortQuestions"`
	OptionalQuestionsBank []ShortQuestion `json:"optionalQuestionsBank"`
	OptionalBatchSize     int             `json:"optionalBatchSize"`
}

// LevelDocument is the content file for one difficulty tier. Tests feed the
// rolling pass average; cloze drills are ungated practice.
type LevelDocument struct {
	Level       string      `json:"level"`
	Tests       []ClozeTest `json:"tests"`
	ClozeDrills []ClozeTest `json:"clozeDrills"`
}

// IntroQuizDocument is the one-time entry quiz
type IntroQuizDocument struct {
	Questions []MCQuestion `json:"questions"`
}
