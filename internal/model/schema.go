package model

// RawSchema is the undecoded form definition as returned by the form service.
// Its shape is not guaranteed; it is read-only input for normalization.
type RawSchema map[string]interface{}

// QuestionType defines the canonical type of a feedback question
type QuestionType string

const (
	QuestionTypeRating      QuestionType = "rating"
	QuestionTypeText        QuestionType = "text"
	QuestionTypeTextarea    QuestionType = "textarea"
	QuestionTypeNumber      QuestionType = "number"
	QuestionTypeBoolean     QuestionType = "boolean"
	QuestionTypeChoice      QuestionType = "choice"
	QuestionTypeMultichoice QuestionType = "multichoice"
	QuestionTypeUnknown     QuestionType = "unknown"
)

// Scale bounds a rating question. Min <= Max always holds after normalization.
type Scale struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

// Option is one selectable choice of a choice/multichoice question
type Option struct {
	Value string `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// Question is the canonical question model every schema dialect normalizes into
type Question struct {
	ID          string       `json:"id" bson:"id"`
	Type        QuestionType `json:"type" bson:"type"`
	Label       string       `json:"label" bson:"label"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Required    bool         `json:"required" bson:"required"`
	Placeholder string       `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Options     []Option     `json:"options,omitempty" bson:"options,omitempty"`
	Scale       *Scale       `json:"scale,omitempty" bson:"scale,omitempty"`
}

// Section groups questions; a section with zero questions does not exist
type Section struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question `json:"questions" bson:"questions"`
}

// CanonicalSchema is the normalized section/question model produced
// regardless of the source dialect
type CanonicalSchema struct {
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Sections    []Section `json:"sections" bson:"sections"`
}

// RatingQuestion is the derived index entry for a bounded numeric question
type RatingQuestion struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Questions returns all questions of the schema in section order
func (s *CanonicalSchema) Questions() []Question {
	var qs []Question
	for _, sec := range s.Sections {
		qs = append(qs, sec.Questions...)
	}
	return qs
}
