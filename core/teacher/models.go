package teacher

// Teacher is a teacher record as returned by the API.
type Teacher struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// NewTeacher contains information needed to create or update a Teacher.
type NewTeacher struct {
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha,omitempty" validate:"required,min=3"`
}

const DefaultSort = "nome,asc"
