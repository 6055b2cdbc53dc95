package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	CustomerRepo       CustomerRepositoryFacade
	SaleRepo           SaleRepositoryFacade
	PaymentRepo        PaymentRepositoryFacade
	SettlementRepo     SettlementRepositoryFacade
	LinkedPurchaseRepo LinkedPurchaseRepositoryFacade
}
