package user

// SubUserInput is the body of POST /subusers.
type SubUserInput struct {
	SubUsername   string `json:"sub_username"`
	AssignedModel string `json:"assigned_model"`
}
