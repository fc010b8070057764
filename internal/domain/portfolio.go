package domain

// AccountType classifies a holding for cash-flow routing.
type AccountType string

// Account type constants.
const (
	AccountTaxable       AccountType = "taxable"
	AccountTaxAdvantaged AccountType = "tax-advantaged"
	AccountCashLike      AccountType = "cash_like"
)

// Account is one holding in the client portfolio.
type Account struct {
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance float64     `json:"balance"`
}

// AssetWeight is one class's share of a pool. Weights across a list are
// normalized before use; they do not need to sum to one on input.
type AssetWeight struct {
	Class  AssetClass `json:"class"`
	Weight float64    `json:"weight"`
}

// RecurringFlow is an ongoing contribution or withdrawal, applied every
// step. Monthly amounts are read from taxable accounts, annual amounts
// from tax-advantaged accounts.
type RecurringFlow struct {
	AccountType   AccountType `json:"account_type"`
	AmountMonthly float64     `json:"amount_monthly,omitempty"`
	AmountAnnual  float64     `json:"amount_annual,omitempty"`
}

// ScheduledFlow is a one-time or repeating event. A flow without a repeat
// window fires during its target year; a repeating flow fires for
// RepeatMonths consecutive steps starting at the first step of Year.
type ScheduledFlow struct {
	Year         int     `json:"year"`
	Amount       float64 `json:"amount"`
	Label        string  `json:"label,omitempty"`
	RepeatMonths *int    `json:"repeat_months,omitempty"`
}

// CashFlows groups the flows of a portfolio.
type CashFlows struct {
	Recurring []RecurringFlow `json:"recurring"`
	Scheduled []ScheduledFlow `json:"scheduled"`
}

// Constraints holds the policy parameters.
type Constraints struct {
	LiquidityFloorPct  float64 `json:"liquidity_floor_pct"`
	RebalanceFrequency string  `json:"rebalance_frequency"`
}

// Goal is a target milestone evaluated against terminal wealth.
type Goal struct {
	Year   int     `json:"year"`
	Target float64 `json:"target"`
	Label  string  `json:"label,omitempty"`
}

// ClientPortfolio is the normalized, immutable simulation input.
// Built once per request by the portfolio builder.
type ClientPortfolio struct {
	Accounts         []Account     `json:"accounts"`
	AssetBreakdown   []AssetWeight `json:"asset_breakdown,omitempty"`
	TargetAllocation []AssetWeight `json:"target_allocation"`
	CashFlows        CashFlows     `json:"cash_flows"`
	Constraints      Constraints   `json:"constraints"`
	Goals            []Goal        `json:"goals"`
	HorizonYears     int           `json:"horizon_years"`
	StepsPerYear     int           `json:"steps_per_year"`
}

// InitialWealth is the sum of all account balances.
func (p *ClientPortfolio) InitialWealth() float64 {
	total := 0.0
	for _, a := range p.Accounts {
		total += a.Balance
	}
	return total
}

// Steps is the total number of simulated steps.
func (p *ClientPortfolio) Steps() int {
	return p.HorizonYears * p.StepsPerYear
}
