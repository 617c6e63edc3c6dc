package models

// CitizenIdentity holds the identification fields collected at the start of a booking.
// CPF keeps whatever the citizen typed (usually the punctuated display form);
// the normalized 11-digit form is derived only when the booking request is built.
type CitizenIdentity struct {
	FullName string `json:"fullName" bson:"full_name"`
	CPF      string `json:"cpf" bson:"cpf"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
}

// IsComplete reports whether every identity field was supplied
func (c CitizenIdentity) IsComplete() bool {
	return c.FullName != "" && c.CPF != "" && c.Email != "" && c.Phone != ""
}
