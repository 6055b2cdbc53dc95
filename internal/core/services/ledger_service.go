package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	portssvc "github.com/dukkan-app/dukkan_backend/internal/core/ports/services"
	"github.com/dukkan-app/dukkan_backend/internal/utils/accounting"
)

// ledgerService implements the reconciliation engine: it fetches all
// ledger sources, classifies every record into a signed statement entry,
// merges them chronologically, accumulates the running balance, and
// cross-checks the result against the SQL-side balance aggregation.
type ledgerService struct {
	BaseService
	customerRepo   portsrepo.CustomerRepositoryFacade
	saleRepo       portsrepo.SaleRepositoryFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	purchaseRepo   portsrepo.LinkedPurchaseRepositoryFacade
	loanMarker     string

	// Statement snapshots are reused until invalidated. Tokens are
	// monotonically increasing per customer so a stale, slower-finishing
	// rebuild can never clobber a newer one (last-result-wins).
	mu        sync.Mutex
	tokens    map[string]uint64
	snapshots map[string]statementSnapshot
}

type statementSnapshot struct {
	token     uint64
	statement *domain.AccountStatement
}

// LedgerServiceOption is a functional option for configuring the ledger
// service.
type LedgerServiceOption func(*ledgerService)

// WithLoanMarker overrides the note prefix that classifies a payment
// record as a loan.
func WithLoanMarker(marker string) LedgerServiceOption {
	return func(s *ledgerService) {
		s.loanMarker = marker
	}
}

// NewLedgerService creates the reconciliation engine with the provided
// source repositories.
func NewLedgerService(repos portsrepo.RepositoryProvider, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		customerRepo:   repos.CustomerRepo,
		saleRepo:       repos.SaleRepo,
		paymentRepo:    repos.PaymentRepo,
		settlementRepo: repos.SettlementRepo,
		purchaseRepo:   repos.LinkedPurchaseRepo,
		loanMarker:     domain.DefaultLoanNoteMarker,
		tokens:         make(map[string]uint64),
		snapshots:      make(map[string]statementSnapshot),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// sourceSet holds the raw records fetched from every ledger source, plus
// the per-source fetch errors. A failed source degrades to empty; it never
// aborts the statement.
type sourceSet struct {
	sales       []domain.Sale
	settlements []domain.Settlement
	payments    []domain.Payment
	purchases   []domain.LinkedPurchase

	salesErr       error
	settlementsErr error
	paymentsErr    error
	purchasesErr   error
}

// GetAccountStatement rebuilds the customer's full reconciliation
// statement. The sequence is rebuilt from scratch on every rebuild; a
// cached snapshot is only served while no source write has invalidated it.
func (s *ledgerService) GetAccountStatement(ctx context.Context, customerID string) (*domain.AccountStatement, error) {
	if snap := s.cachedStatement(customerID); snap != nil {
		s.LogDebug(ctx, "Serving cached statement snapshot", slog.String("customer_id", customerID))
		return snap, nil
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		s.LogDebug(ctx, "Customer lookup failed for statement", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return nil, err
	}

	token := s.issueToken(customerID)

	sources, err := s.fetchSources(ctx, customer)
	if err != nil {
		// Cancelled or timed out: abandon without publishing partial data.
		return nil, err
	}

	statement := s.assembleStatement(ctx, customer, sources)

	// Cross-check against the independent aggregation path. A degraded
	// source would trivially disagree, so the check only runs on complete
	// statements.
	if !statement.Partial {
		aggregated, aggErr := s.computeCurrentBalance(ctx, customer)
		if aggErr != nil {
			s.LogWarn(ctx, "Balance aggregation unavailable for cross-check", slog.String("customer_id", customerID), slog.String("error", aggErr.Error()))
		} else if !accounting.WithinTolerance(statement.FinalBalance, aggregated) {
			s.LogError(ctx, fmt.Errorf("statement balance %s, aggregated balance %s", statement.FinalBalance, aggregated),
				"Balance reconciliation mismatch", slog.String("customer_id", customerID))
			statement.Warnings = append(statement.Warnings, domain.ReconciliationWarning{
				Code:    domain.WarnBalanceMismatch,
				RefID:   customerID,
				Message: fmt.Sprintf("statement balance %s disagrees with aggregated balance %s", statement.FinalBalance, aggregated),
			})
		}
	}

	// Degraded statements are returned but never cached, so a recovered
	// source is picked up on the next request.
	if !statement.Partial {
		s.publish(customerID, token, statement)
	}

	s.LogInfo(ctx, "Account statement reconciled",
		slog.String("customer_id", customerID),
		slog.Int("entry_count", len(statement.Entries)),
		slog.String("final_balance", statement.FinalBalance.String()),
		slog.Bool("partial", statement.Partial))
	return statement, nil
}

// GetCurrentBalance computes the final balance directly via SQL-side sums,
// without building statement rows.
func (s *ledgerService) GetCurrentBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.computeCurrentBalance(ctx, customer)
}

// InvalidateCustomer drops the customer's statement snapshot and bumps the
// request token so any in-flight rebuild started before the write cannot
// publish over fresher data.
func (s *ledgerService) InvalidateCustomer(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[customerID]++
	delete(s.snapshots, customerID)
}

// fetchSources fans the source adapters out concurrently. Each adapter
// records its own error and degrades independently; only caller
// cancellation aborts the whole fetch.
func (s *ledgerService) fetchSources(ctx context.Context, customer *domain.Customer) (*sourceSet, error) {
	sources := &sourceSet{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sources.sales, sources.salesErr = s.saleRepo.FindSalesByCustomerID(gctx, customer.CustomerID)
		if sources.salesErr != nil || len(sources.sales) == 0 {
			return nil
		}
		saleIDs := make([]string, len(sources.sales))
		for i, sale := range sources.sales {
			saleIDs[i] = sale.SaleID
		}
		sources.settlements, sources.settlementsErr = s.settlementRepo.FindSettlementsBySaleIDs(gctx, saleIDs)
		return nil
	})

	g.Go(func() error {
		sources.payments, sources.paymentsErr = s.paymentRepo.FindPaymentsByCustomerID(gctx, customer.CustomerID)
		return nil
	})

	if customer.IsLinked() {
		g.Go(func() error {
			sources.purchases, sources.purchasesErr = s.purchaseRepo.FindPurchasesBySupplierID(gctx, *customer.LinkedSupplierID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return sources, nil
}

// assembleStatement classifies every fetched record, merges the entries
// chronologically behind the opening balance, and accumulates the running
// balance. Source order here fixes the tie-break for equal timestamps:
// opening balance, sales, payments, linked purchases.
func (s *ledgerService) assembleStatement(ctx context.Context, customer *domain.Customer, sources *sourceSet) *domain.AccountStatement {
	statement := &domain.AccountStatement{
		CustomerID:  customer.CustomerID,
		GeneratedAt: time.Now().UTC(),
	}

	degrade := func(source string, err error) {
		if err == nil {
			return
		}
		s.LogWarn(ctx, "Ledger source degraded to empty",
			slog.String("customer_id", customer.CustomerID),
			slog.String("source", source),
			slog.String("error", err.Error()))
		statement.Partial = true
		statement.Warnings = append(statement.Warnings, domain.ReconciliationWarning{
			Code:    domain.WarnSourceDegraded,
			Source:  source,
			Message: fmt.Sprintf("%s source unavailable, omitted from statement", source),
		})
	}
	degrade("sales", sources.salesErr)
	degrade("settlements", sources.settlementsErr)
	degrade("payments", sources.paymentsErr)
	degrade("linked_purchases", sources.purchasesErr)

	entries := make([]domain.LedgerEntry, 0, len(sources.sales)+len(sources.payments)+len(sources.purchases)+1)

	if opening, ok := accounting.OpeningBalanceEntry(*customer); ok {
		entries = append(entries, opening)
	}

	for _, sale := range sources.sales {
		paid, warning := accounting.ResolvePaidAmount(sale.SaleID, sources.settlements)
		if warning != nil {
			statement.Warnings = append(statement.Warnings, *warning)
		}
		entries = append(entries, accounting.ClassifySale(sale, paid))
	}

	for _, payment := range sources.payments {
		entry, warning := accounting.ClassifyPayment(payment, s.loanMarker)
		if warning != nil {
			statement.Warnings = append(statement.Warnings, *warning)
		}
		entries = append(entries, entry)
	}

	for _, purchase := range sources.purchases {
		entries = append(entries, accounting.ClassifyLinkedPurchase(purchase))
	}

	accounting.SortChronological(entries)
	statement.FinalBalance = accounting.ApplyRunningBalances(entries)
	statement.Entries = entries
	return statement
}

// computeCurrentBalance is the cheap aggregation path:
// opening + sale totals + payment effect (loans positive, payments
// negative) + linked purchase effect (purchases negative, returns
// positive). Each failing sum degrades to zero, mirroring the statement's
// degraded-source policy.
func (s *ledgerService) computeCurrentBalance(ctx context.Context, customer *domain.Customer) (decimal.Decimal, error) {
	var saleSum, paymentEffect, purchaseEffect decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sum, err := s.saleRepo.SumSaleTotalsByCustomerID(gctx, customer.CustomerID)
		if err != nil {
			s.LogWarn(ctx, "Sale totals aggregation degraded to zero", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
			return nil
		}
		saleSum = sum
		return nil
	})

	g.Go(func() error {
		sum, err := s.paymentRepo.SumPaymentEffectByCustomerID(gctx, customer.CustomerID, s.loanMarker)
		if err != nil {
			s.LogWarn(ctx, "Payment aggregation degraded to zero", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
			return nil
		}
		paymentEffect = sum
		return nil
	})

	if customer.IsLinked() {
		g.Go(func() error {
			sum, err := s.purchaseRepo.SumPurchaseEffectBySupplierID(gctx, *customer.LinkedSupplierID)
			if err != nil {
				s.LogWarn(ctx, "Linked purchase aggregation degraded to zero", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
				return nil
			}
			purchaseEffect = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}
	if ctx.Err() != nil {
		return decimal.Zero, ctx.Err()
	}

	return customer.OpeningBalance.Add(saleSum).Add(paymentEffect).Add(purchaseEffect), nil
}

func (s *ledgerService) cachedStatement(customerID string) *domain.AccountStatement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.snapshots[customerID]; ok {
		return snap.statement
	}
	return nil
}

func (s *ledgerService) issueToken(customerID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[customerID]++
	return s.tokens[customerID]
}

// publish stores the statement snapshot unless a newer token has been
// issued since this rebuild started, in which case the stale result is
// discarded.
func (s *ledgerService) publish(customerID string, token uint64, statement *domain.AccountStatement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.tokens[customerID] {
		return
	}
	s.snapshots[customerID] = statementSnapshot{token: token, statement: statement}
}
