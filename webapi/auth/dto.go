package auth

// LoginInput is the body of POST /auth/login. Identity is a username or an email.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupInput is the body of POST /auth/signup. Field rules live in the
// user service so the messages match the stored data.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"max=72"`
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password" validate:"max=72"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
