package storage

// VerificationStore is the read-only slice of the data layer the eligibility
// checks depend on.
type VerificationStore interface {
	AccountReader
	CustomerReader
	TransactionReader
}

// ApiStore defines the complete set of operations needed by the API service.
// It composes the granular interfaces to provide a clear boundary for the
// pipeline's data access.
type ApiStore interface {
	AccountStore
	CustomerReader
	TransactionStore
	ChallengeStore
	PaymentRequestStore
}
