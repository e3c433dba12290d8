package dtos

type UserAuthRequest struct {
	Username string `json:"username" binding:"required,min=1,max=25"`
	Password string `json:"password" binding:"required,min=1"`
}

type UserRegisterRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25"`
	Password  string `json:"password" binding:"required,min=5,max=20"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30"`
	Email     string `json:"email" binding:"required,min=6,max=60,email"`
}

// UserCreationRequest is the admin-only POST /users body, it may grant admin rights.
type UserCreationRequest struct {
	UserRegisterRequest
	IsAdmin bool `json:"isAdmin"`
}

// UserUpdateRequest is the PATCH /users/:username body. The username can't change.
type UserUpdateRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Password  *string `json:"password" binding:"omitempty,min=5,max=20"`
	Email     *string `json:"email" binding:"omitempty,min=6,max=60,email"`
	IsAdmin   *bool   `json:"isAdmin"`
}

func (r *UserUpdateRequest) Value(key string) (any, bool) {
	switch key {
	case "firstName":
		return deref(r.FirstName), true
	case "lastName":
		return deref(r.LastName), true
	case "password":
		return deref(r.Password), true
	case "email":
		return deref(r.Email), true
	case "isAdmin":
		return deref(r.IsAdmin), true
	}
	return nil, false
}
