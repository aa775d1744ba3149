package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
)

var testNow = time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC)

var adminActor = Actor{UserID: "admin-1", IPAddress: "10.0.0.9"}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memoryInvestments keeps rows in insertion order and applies the bulk
// suspension the way the SQL statement does.
type memoryInvestments struct {
	rows       map[string]*investment.Investment
	order      []string
	UpdateErr  error
	suspendCap int64
}

func newMemoryInvestments(items ...*investment.Investment) *memoryInvestments {
	m := &memoryInvestments{rows: map[string]*investment.Investment{}, suspendCap: -1}
	for _, inv := range items {
		m.rows[inv.ID()] = inv
		m.order = append(m.order, inv.ID())
	}
	return m
}

func (m *memoryInvestments) Create(_ context.Context, inv *investment.Investment) error {
	m.rows[inv.ID()] = inv
	m.order = append(m.order, inv.ID())
	return nil
}

func (m *memoryInvestments) Update(_ context.Context, inv *investment.Investment) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.rows[inv.ID()] = inv
	return nil
}

func (m *memoryInvestments) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryInvestments) GetByID(_ context.Context, id string) (*investment.Investment, error) {
	inv, ok := m.rows[id]
	if !ok {
		return nil, investment.ErrNotFound(id)
	}
	return inv, nil
}

func (m *memoryInvestments) FindOpenByUserAndProduct(_ context.Context, userID, productName string) (*investment.Investment, error) {
	for _, inv := range m.all() {
		if inv.UserID() == userID && inv.ProductName() == productName && inv.Status().IsOpen() {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memoryInvestments) ListByUser(_ context.Context, userID string) ([]*investment.Investment, error) {
	return m.filter(investment.ListFilter{UserID: userID}), nil
}

func (m *memoryInvestments) List(_ context.Context, filter investment.ListFilter) ([]*investment.Investment, error) {
	return m.filter(filter), nil
}

func (m *memoryInvestments) SuspendAllActive(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, inv := range m.all() {
		if inv.Status() != vo.StatusActive {
			continue
		}
		if m.suspendCap >= 0 && n >= m.suspendCap {
			break
		}
		m.rows[inv.ID()] = investment.ReconstructInvestment(
			inv.ID(), inv.UserID(), inv.ProductName(),
			inv.DepositAmount(), inv.InvestmentDays(),
			inv.PaymentMethod(), vo.StatusSuspended,
			inv.Returns(), inv.ReferenceCode(), inv.ExpectedReturnDate(), inv.Deployment(), inv.Payout(),
			inv.CreatedAt(), now,
		)
		n++
	}
	return n, nil
}

func (m *memoryInvestments) CountByStatus(_ context.Context, statuses ...vo.Status) (int64, error) {
	return int64(len(m.filter(investment.ListFilter{Statuses: statuses}))), nil
}

func (m *memoryInvestments) SumDeposits(_ context.Context, statuses ...vo.Status) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, inv := range m.filter(investment.ListFilter{Statuses: statuses}) {
		sum = sum.Add(inv.DepositAmount())
	}
	return sum, nil
}

func (m *memoryInvestments) CountMaturingBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, inv := range m.filter(investment.ListFilter{Statuses: []vo.Status{vo.StatusActive}}) {
		due := inv.ExpectedReturnDate()
		if due != nil && !due.Before(from) && !due.After(to) {
			n++
		}
	}
	return n, nil
}

func (m *memoryInvestments) TotalsByUser(_ context.Context) ([]investment.UserTotals, error) {
	byUser := map[string]*investment.UserTotals{}
	for _, inv := range m.filter(investment.ListFilter{Statuses: vo.OpenStatuses()}) {
		t, ok := byUser[inv.UserID()]
		if !ok {
			t = &investment.UserTotals{UserID: inv.UserID(), OpenDeposits: decimal.Zero, ActiveDeposits: decimal.Zero, Returns: decimal.Zero}
			byUser[inv.UserID()] = t
		}
		t.OpenDeposits = t.OpenDeposits.Add(inv.DepositAmount())
		t.Returns = t.Returns.Add(inv.Returns())
		if inv.Status() == vo.StatusActive {
			t.ActiveDeposits = t.ActiveDeposits.Add(inv.DepositAmount())
			t.ActiveCount++
		} else {
			t.PendingCount++
		}
	}
	result := make([]investment.UserTotals, 0, len(byUser))
	for _, t := range byUser {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *memoryInvestments) all() []*investment.Investment {
	result := make([]*investment.Investment, 0, len(m.order))
	for _, id := range m.order {
		if inv, ok := m.rows[id]; ok {
			result = append(result, inv)
		}
	}
	return result
}

func (m *memoryInvestments) filter(f investment.ListFilter) []*investment.Investment {
	var result []*investment.Investment
	for _, inv := range m.all() {
		if f.UserID != "" && inv.UserID() != f.UserID {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, inv.Status()) {
			continue
		}
		result = append(result, inv)
	}
	return result
}

func containsStatus(list []vo.Status, s vo.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type memoryAudit struct {
	entries   []*audit.Entry
	AppendErr error
}

func (m *memoryAudit) Append(_ context.Context, e *audit.Entry) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	e.SetID(uint(len(m.entries) + 1))
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryAudit) ListRecent(_ context.Context, limit int) ([]*audit.Entry, error) {
	result := make([]*audit.Entry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.entries[i])
	}
	return result, nil
}

func (m *memoryAudit) actions() []audit.ActionType {
	result := make([]audit.ActionType, 0, len(m.entries))
	for _, e := range m.entries {
		result = append(result, e.Action())
	}
	return result
}

type memoryProfiles struct {
	byUser map[string]*profile.Profile
}

func newMemoryProfiles(items ...*profile.Profile) *memoryProfiles {
	m := &memoryProfiles{byUser: map[string]*profile.Profile{}}
	for _, p := range items {
		m.byUser[p.UserID()] = p
	}
	return m
}

func (m *memoryProfiles) Create(_ context.Context, p *profile.Profile) error {
	m.byUser[p.UserID()] = p
	return nil
}

func (m *memoryProfiles) Update(_ context.Context, p *profile.Profile) error {
	m.byUser[p.UserID()] = p
	return nil
}

func (m *memoryProfiles) GetByUserID(_ context.Context, userID string) (*profile.Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, profile.ErrNotFound(userID)
	}
	return p, nil
}

func (m *memoryProfiles) GetByUserIDs(_ context.Context, userIDs []string) (map[string]*profile.Profile, error) {
	result := map[string]*profile.Profile{}
	for _, id := range userIDs {
		if p, ok := m.byUser[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (m *memoryProfiles) List(_ context.Context) ([]*profile.Profile, error) {
	result := make([]*profile.Profile, 0, len(m.byUser))
	for _, p := range m.byUser {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID() < result[j].UserID() })
	return result, nil
}

type memoryRequests struct {
	byID map[uint]*withdrawal.PrincipalRequest
}

func (m *memoryRequests) Create(_ context.Context, r *withdrawal.PrincipalRequest) error {
	r.SetID(uint(len(m.byID) + 1))
	m.byID[r.ID()] = r
	return nil
}

func (m *memoryRequests) Update(_ context.Context, r *withdrawal.PrincipalRequest) error {
	m.byID[r.ID()] = r
	return nil
}

func (m *memoryRequests) GetByID(_ context.Context, id uint) (*withdrawal.PrincipalRequest, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, withdrawal.ErrRequestNotFound(id)
	}
	return r, nil
}

func (m *memoryRequests) List(_ context.Context, status withdrawal.RequestStatus) ([]*withdrawal.PrincipalRequest, error) {
	var result []*withdrawal.PrincipalRequest
	for _, r := range m.byID {
		if status == "" || r.Status() == status {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *memoryRequests) HasPending(_ context.Context, userID string) (bool, error) {
	for _, r := range m.byID {
		if r.UserID() == userID && r.Status() == withdrawal.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

type fixedRoles map[string]bool

func (f fixedRoles) IsAdmin(_ context.Context, userID string) (bool, error) {
	return f[userID], nil
}

type recordingPublisher struct {
	events []investment.LifecycleEvent
	Err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event investment.LifecycleEvent) error {
	r.events = append(r.events, event)
	return r.Err
}

type recordingNotifier struct {
	notices []ShutdownNotice
	Err     error
}

func (r *recordingNotifier) NotifyEmergencyShutdown(_ context.Context, notice ShutdownNotice) error {
	r.notices = append(r.notices, notice)
	return r.Err
}

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func admins() fixedRoles {
	return fixedRoles{adminActor.UserID: true}
}

func newInvestment(id, userID string, status vo.Status, deposit, returns string, maturity *time.Time) *investment.Investment {
	created := testNow.AddDate(0, 0, -30)
	return investment.ReconstructInvestment(
		id, userID, "Coffee",
		d(deposit), 30,
		vo.PaymentMethodBankWire, status,
		d(returns), nil, maturity, nil, nil,
		created, created,
	)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func bankedProfile(userID, email string) *profile.Profile {
	return profile.ReconstructProfile(userID, email, profile.BankAccount{
		HolderName:    "Taro Yamada",
		BankName:      "Mizuho",
		Branch:        "Shibuya",
		AccountNumber: "1234567",
		AccountType:   "futsu",
	}, profile.Balances{
		WithdrawalPrincipalUSD: decimal.Zero,
		JPYDeposit:             decimal.Zero,
		TotalReturnsUSD:        decimal.Zero,
	}, testNow, testNow)
}

type recordingMaturityNotifier struct {
	notices []MaturityNotice
	Err     error
}

func (r *recordingMaturityNotifier) NotifyMaturingInvestments(_ context.Context, notice MaturityNotice) error {
	r.notices = append(r.notices, notice)
	return r.Err
}
