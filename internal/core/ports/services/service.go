package services

// ServiceContainer bundles all service facades for handler registration.
type ServiceContainer struct {
	Customer CustomerSvcFacade
	Ledger   LedgerSvcFacade
}
