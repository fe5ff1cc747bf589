package request

// CreateTableRequest is the request body for opening a table
type CreateTableRequest struct {
	RollLimit int `json:"roll_limit,omitempty"`
}

// AddPlayerRequest is the request body for seating a player
type AddPlayerRequest struct {
	Username string `json:"username"`
}

// AddBotRequest is the request body for seating a computer player
type AddBotRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

// SelectCategoryRequest is the request body for previewing a category
type SelectCategoryRequest struct {
	Category string `json:"category"`
}

// ScoreRequest is the request body for stateless dice evaluation
type ScoreRequest struct {
	Dice     []int  `json:"dice"`
	Category string `json:"category,omitempty"`
}
