package challenge

// Type 挑战类型
type Type string

const (
	TypeTrivia   Type = "TRIVIA"
	TypeAction   Type = "ACTION"
	TypeDare     Type = "DARE"
	TypeDrinking Type = "DRINKING"
)

// AgeRating 年龄分级
type AgeRating string

const (
	RatingAll   AgeRating = "ALL"
	RatingTeen  AgeRating = "TEEN"
	RatingAdult AgeRating = "ADULT"
)

// TriviaPayload 问答题内容
type TriviaPayload struct {
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer int      `json:"correct_answer"`
}

// ActionPayload 动作类挑战内容
type ActionPayload struct {
	Action string `json:"action"`
}

// Challenge 挑战（创建后不可变）
// Type 决定携带哪个载荷：TRIVIA 带 Trivia，其余类型带 Action
type Challenge struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Category  string    `json:"category"`
	AgeRating AgeRating `json:"age_rating"`
	Points    int       `json:"points"`

	Trivia *TriviaPayload `json:"trivia,omitempty"`
	Action *ActionPayload `json:"action,omitempty"`
}

// IsTrivia 是否问答题
func (c *Challenge) IsTrivia() bool {
	return c.Type == TypeTrivia && c.Trivia != nil
}

// matchesRating 分级过滤：请求 rating 时，rating 和 ALL 都可用
func (c *Challenge) matchesRating(rating AgeRating) bool {
	return c.AgeRating == rating || c.AgeRating == RatingAll
}
