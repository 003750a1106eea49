package orders

type Status string

const (
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
	StatusError    Status = "error"
)

// Classify maps the client-supplied transaction type code to a payment
// outcome, standing in for a real gateway. The mapping is total: "2" declines,
// "3" simulates a gateway error, anything else (including empty) approves.
func Classify(transactionType string) Status {
	switch transactionType {
	case "2":
		return StatusDeclined
	case "3":
		return StatusError
	default:
		return StatusApproved
	}
}
