package handler

// Form payloads bound from application/x-www-form-urlencoded bodies.

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FirstName string `form:"firstName" validate:"required,max=80"`
	LastName  string `form:"lastName" validate:"required,max=80"`
	Email     string `form:"email" validate:"required,email"`
	Phone     string `form:"phone" validate:"max=30"`
	Password  string `form:"password" validate:"required"`
}

type forgotForm struct {
	Email string `form:"email" validate:"required,email"`
}

type searchForm struct {
	Breed string `form:"breed" validate:"max=80"`
}

type adoptionForm struct {
	Message string `form:"message" validate:"max=1000"`
}
