package model

// QuestionType is the kind of scale a question is answered on.
type QuestionType string

const (
	Likert5    QuestionType = "likert5"
	YesNoMaybe QuestionType = "ynm"
)

// Core learning-skill domains, in display order.
var CoreDomains = []string{
	DomainPriming,
	DomainEncoding,
	DomainReference,
	DomainRetrieval,
	DomainOverlearning,
}

const (
	DomainPriming      = "priming"
	DomainEncoding     = "encoding"
	DomainReference    = "reference"
	DomainRetrieval    = "retrieval"
	DomainOverlearning = "overlearning"
)

// Meta-learning domains recognised by flag thresholds.
const (
	DomainMindsetFixed    = "mindset_fixed"
	DomainResourcefulness = "resourcefulness"
	DomainBigPicture      = "big_picture"
)

// Question is one questionnaire item. Questions are reference data loaded
// from the catalog files and never mutated at runtime.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Domain  string       `json:"domain"`
	Reverse bool         `json:"reverse,omitempty"`
}

// Answers maps question id to the raw submitted value: a number for likert5
// (numeric strings are coerced) or "yes"/"no"/"maybe" for ynm. Unanswered
// questions are absent from the map, never nil.
type Answers map[string]interface{}

// Scores maps domain name to a 0-100 score. A domain with no answered
// questions has no entry; absence is meaningful and must not be read as 0.
type Scores map[string]int
