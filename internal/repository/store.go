package repository

// Store bundles one repository per entity for a single backend.
type Store struct {
	Users           UserRepository
	OTPs            OTPRepository
	Farms           FarmRepository
	Practices       PracticeRepository
	Proofs          ProofRepository
	Credits         CreditRepository
	Listings        ListingRepository
	Alerts          AlertRepository
	Recommendations RecommendationRepository
}
