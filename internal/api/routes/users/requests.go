package users

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,slug"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required"`
	CurrentPassword string `json:"current_password" validate:"required"`
}
