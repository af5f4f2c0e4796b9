package dto

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      any    `json:"value"`
}

type NameRequest struct {
	Name string `json:"name"`
}

type WheelRequest struct {
	Career        int `json:"career"`
	Health        int `json:"health"`
	Relationships int `json:"relationships"`
	Money         int `json:"money"`
	Growth        int `json:"growth"`
	Fun           int `json:"fun"`
	Environment   int `json:"environment"`
	Purpose       int `json:"purpose"`
}

type CheckinRequest struct {
	MoodScore int    `json:"mood_score"`
	Note      string `json:"note"`
}
