package loan

// Applicant is the person a loan was issued to. TotalLoan is the
// applicant's aggregate exposure and is hidden from the staff role.
type Applicant struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	TotalLoan string `json:"totalLoan,omitempty"`
}

// Loan is a single loan record.
type Loan struct {
	ID           string    `json:"id"`
	Amount       string    `json:"amount"`
	MaturityDate string    `json:"maturityDate"`
	Status       string    `json:"status"`
	Applicant    Applicant `json:"applicant"`
	CreatedAt    string    `json:"createdAt"`
}

// redactFor strips fields the given role may not see.
func (l Loan) redactFor(role string) Loan {
	if role == RoleStaff {
		l.Applicant.TotalLoan = ""
	}
	return l
}
