package student

// Student is a student record as returned by the API.
type Student struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	RegistrationNumber string `json:"registrationNumber"`
}

// NewStudent contains information needed to create or update a Student.
type NewStudent struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Password           string `json:"password,omitempty" validate:"required,min=6"`
}

// DefaultSort orders student listings unless a caller asks otherwise.
const DefaultSort = "name,asc"
