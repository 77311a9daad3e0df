package entity

// Score is the feedback for one guess.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

func (that Score) IsWin(rules Rules) bool {
	return that.Black == rules.CodeLength
}
