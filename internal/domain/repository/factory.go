package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Profiles() ProfileRepository
	Payments() PaymentRepository
	Sessions() SessionRepository
	Wizards() WizardRepository
}
