// Package portfolio builds the immutable simulation input from the
// declarative record form produced by upstream document extraction.
package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"

	"advisor-mc-lab/internal/domain"
)

// ErrMalformed indicates the portfolio description is missing required
// fields or carries non-numeric values where numbers are required.
var ErrMalformed = errors.New("malformed portfolio input")

// Defaults applied at construction time only; never as error recovery.
const (
	defaultHorizonYears = 20
	defaultStepsPerYear = 12
	defaultRebalance    = "monthly"
)

// FromMap builds a ClientPortfolio from the declarative map form.
// Accounts and target_allocation are required; cash flows, constraints
// and goals default to a no-op configuration when absent or empty.
// Class membership and weight normalization are validated by the engine,
// once per run.
func FromMap(d map[string]any) (*domain.ClientPortfolio, error) {
	accounts, err := parseAccounts(d["accounts"])
	if err != nil {
		return nil, err
	}

	target, err := parseWeights(d["target_allocation"], "target_allocation", true)
	if err != nil {
		return nil, err
	}

	breakdown, err := parseWeights(d["asset_breakdown"], "asset_breakdown", false)
	if err != nil {
		return nil, err
	}

	flows, err := parseCashFlows(d["cash_flows"])
	if err != nil {
		return nil, err
	}

	constraints, err := parseConstraints(d["constraints"])
	if err != nil {
		return nil, err
	}

	goals, err := parseGoals(d["goals"])
	if err != nil {
		return nil, err
	}

	// Horizon lookup order: client.time_horizon_years, then the
	// top-level key, then the default.
	horizon := defaultHorizonYears
	horizonSet := false
	if client, ok := d["client"].(map[string]any); ok {
		if v, ok := client["time_horizon_years"]; ok {
			if horizon, err = toInt(v, "client.time_horizon_years"); err != nil {
				return nil, err
			}
			horizonSet = true
		}
	}
	if !horizonSet {
		if v, ok := d["time_horizon_years"]; ok {
			if horizon, err = toInt(v, "time_horizon_years"); err != nil {
				return nil, err
			}
		}
	}

	steps := defaultStepsPerYear
	if v, ok := d["steps_per_year"]; ok {
		if steps, err = toInt(v, "steps_per_year"); err != nil {
			return nil, err
		}
	}

	return &domain.ClientPortfolio{
		Accounts:         accounts,
		AssetBreakdown:   breakdown,
		TargetAllocation: target,
		CashFlows:        flows,
		Constraints:      constraints,
		Goals:            goals,
		HorizonYears:     horizon,
		StepsPerYear:     steps,
	}, nil
}

func parseAccounts(v any) ([]domain.Account, error) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w: accounts is required", ErrMalformed)
	}

	accounts := make([]domain.Account, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: accounts[%d] is not an object", ErrMalformed, i)
		}
		balance, err := toFloat(m["balance"], fmt.Sprintf("accounts[%d].balance", i))
		if err != nil {
			return nil, err
		}
		name, _ := m["name"].(string)
		typ, _ := m["type"].(string)
		accounts = append(accounts, domain.Account{
			Name:    name,
			Type:    domain.AccountType(typ),
			Balance: balance,
		})
	}
	return accounts, nil
}

func parseWeights(v any, field string, required bool) ([]domain.AssetWeight, error) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		if required {
			return nil, fmt.Errorf("%w: %s is required", ErrMalformed, field)
		}
		return nil, nil
	}

	weights := make([]domain.AssetWeight, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrMalformed, field, i)
		}
		class, ok := m["class"].(string)
		if !ok || class == "" {
			return nil, fmt.Errorf("%w: %s[%d].class is required", ErrMalformed, field, i)
		}
		weight, err := toFloat(m["weight"], fmt.Sprintf("%s[%d].weight", field, i))
		if err != nil {
			return nil, err
		}
		weights = append(weights, domain.AssetWeight{Class: domain.AssetClass(class), Weight: weight})
	}
	return weights, nil
}

func parseCashFlows(v any) (domain.CashFlows, error) {
	var flows domain.CashFlows
	m, ok := v.(map[string]any)
	if !ok {
		return flows, nil
	}

	if items, ok := m["recurring"].([]any); ok {
		for i, item := range items {
			rm, ok := item.(map[string]any)
			if !ok {
				return flows, fmt.Errorf("%w: cash_flows.recurring[%d] is not an object", ErrMalformed, i)
			}
			var rf domain.RecurringFlow
			if typ, ok := rm["account_type"].(string); ok {
				rf.AccountType = domain.AccountType(typ)
			}
			var err error
			if _, present := rm["amount_monthly"]; present {
				if rf.AmountMonthly, err = toFloat(rm["amount_monthly"], fmt.Sprintf("cash_flows.recurring[%d].amount_monthly", i)); err != nil {
					return flows, err
				}
			}
			if _, present := rm["amount_annual"]; present {
				if rf.AmountAnnual, err = toFloat(rm["amount_annual"], fmt.Sprintf("cash_flows.recurring[%d].amount_annual", i)); err != nil {
					return flows, err
				}
			}
			flows.Recurring = append(flows.Recurring, rf)
		}
	}

	if items, ok := m["scheduled"].([]any); ok {
		for i, item := range items {
			sm, ok := item.(map[string]any)
			if !ok {
				return flows, fmt.Errorf("%w: cash_flows.scheduled[%d] is not an object", ErrMalformed, i)
			}
			year, err := toInt(sm["year"], fmt.Sprintf("cash_flows.scheduled[%d].year", i))
			if err != nil {
				return flows, err
			}
			amount, err := toFloat(sm["amount"], fmt.Sprintf("cash_flows.scheduled[%d].amount", i))
			if err != nil {
				return flows, err
			}
			sf := domain.ScheduledFlow{Year: year, Amount: amount}
			if label, ok := sm["label"].(string); ok {
				sf.Label = label
			}
			if _, present := sm["repeat_months"]; present {
				months, err := toInt(sm["repeat_months"], fmt.Sprintf("cash_flows.scheduled[%d].repeat_months", i))
				if err != nil {
					return flows, err
				}
				sf.RepeatMonths = &months
			}
			flows.Scheduled = append(flows.Scheduled, sf)
		}
	}

	return flows, nil
}

func parseConstraints(v any) (domain.Constraints, error) {
	c := domain.Constraints{RebalanceFrequency: defaultRebalance}
	m, ok := v.(map[string]any)
	if !ok {
		return c, nil
	}
	if _, present := m["liquidity_floor_pct"]; present {
		floor, err := toFloat(m["liquidity_floor_pct"], "constraints.liquidity_floor_pct")
		if err != nil {
			return c, err
		}
		c.LiquidityFloorPct = floor
	}
	if freq, ok := m["rebalance_frequency"].(string); ok && freq != "" {
		c.RebalanceFrequency = freq
	}
	return c, nil
}

func parseGoals(v any) ([]domain.Goal, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, nil
	}

	goals := make([]domain.Goal, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: goals[%d] is not an object", ErrMalformed, i)
		}
		year, err := toInt(m["year"], fmt.Sprintf("goals[%d].year", i))
		if err != nil {
			return nil, err
		}
		target, err := toFloat(m["target"], fmt.Sprintf("goals[%d].target", i))
		if err != nil {
			return nil, err
		}
		g := domain.Goal{Year: year, Target: target}
		if label, ok := m["label"].(string); ok {
			g.Label = label
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// toFloat coerces the numeric shapes a decoded JSON document or a
// hand-built map can carry.
func toFloat(v any, field string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", ErrMalformed, field)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("%w: %s is required", ErrMalformed, field)
	default:
		return 0, fmt.Errorf("%w: %s is not numeric", ErrMalformed, field)
	}
}

func toInt(v any, field string) (int, error) {
	f, err := toFloat(v, field)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
