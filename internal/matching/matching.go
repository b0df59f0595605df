package matching

import (
	"math"
	"sort"
	"time"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"

	"github.com/sellerledger/backend/internal/models"
)

// Type says whether a match pairs a bank transaction with a vendor
// payable or an income receivable.
type Type string

const (
	TypeVendor Type = "vendor"
	TypeIncome Type = "income"
)

// Match is a proposed pairing between a bank transaction and a single
// payable or receivable. Matches are transient: they are recomputed from
// snapshots on demand and never persisted.
type Match struct {
	BankTransaction   models.BankTransaction
	Type              Type
	VendorTransaction *models.VendorTransaction
	IncomeItem        *models.IncomeItem

	// Score is the composite confidence on a 0 to 1 scale
	Score float64

	// Component scores, all 0 to 1
	AmountScore float64
	DateScore   float64
	NameScore   float64

	// DateDistance is the day distance used for tie-breaking.
	// Candidates without a due date get an unknown (maximum) distance.
	DateDistance int
}

// MatchedID returns the ID of the payable or receivable side of the match.
func (m Match) MatchedID() string {
	if m.Type == TypeVendor && m.VendorTransaction != nil {
		return m.VendorTransaction.ID.String()
	}
	if m.Type == TypeIncome && m.IncomeItem != nil {
		return m.IncomeItem.ID.String()
	}
	return ""
}

// Snapshot is the explicit input of ComputeMatches. It decouples the
// engine from the live store: callers load the record sets once and the
// engine stays a pure function of its input.
type Snapshot struct {
	BankTransactions   []models.BankTransaction
	VendorTransactions []models.VendorTransaction
	IncomeItems        []models.IncomeItem
	Rules              []models.MatchRule // must be sorted by priority
}

// Config holds the tolerance bands of the composite score.
type Config struct {
	// AmountTolerancePercent widens the amount band relative to the
	// candidate amount, e.g. 0.03 for 3%
	AmountTolerancePercent decimal.Decimal

	// AmountToleranceFixed is the minimum width of the amount band,
	// so small amounts still have room for fees
	AmountToleranceFixed decimal.Decimal

	// DateToleranceDays is the day distance at which the date score
	// reaches zero
	DateToleranceDays int

	// MinScore is the composite score threshold below which candidates
	// are not emitted
	MinScore float64
}

// DefaultConfig returns the tolerances used by the dashboard.
func DefaultConfig() Config {
	return Config{
		AmountTolerancePercent: decimal.NewFromFloat(0.03),
		AmountToleranceFixed:   decimal.NewFromFloat(5),
		DateToleranceDays:      14,
		MinScore:               0.5,
	}
}

// Weights of the composite score. They sum to 1 so the composite stays
// on the 0 to 1 scale.
const (
	weightAmount = 0.5
	weightDate   = 0.25
	weightName   = 0.25
)

// neutralDateScore is used when a candidate has no due date.
const neutralDateScore = 0.5

// ComputeMatches computes candidate pairings between the bank transactions
// and the open payables and receivables of the snapshot.
//
// It is a pure function of its inputs: no side effects, deterministic
// output for identical input. Debit bank transactions are only scored
// against pending vendor transactions, credits only against pending
// income items. A bank transaction may appear in any number of matches;
// collapsing them to one outcome is the job of the reconciler.
func ComputeMatches(snapshot Snapshot, config Config, scorer Scorer) []Match {
	matches := make([]Match, 0)

	for _, bank := range snapshot.BankTransactions {
		// Unsettled movements cannot be reconciled yet
		if bank.Pending || bank.Amount.IsZero() {
			continue
		}

		if bank.Debit() {
			for i := range snapshot.VendorTransactions {
				vendor := snapshot.VendorTransactions[i]
				if vendor.Status != models.VendorTransactionPending {
					continue
				}

				m := scoreVendor(bank, vendor, snapshot.Rules, config, scorer)
				if m.Score >= config.MinScore {
					matches = append(matches, m)
				}
			}
		} else {
			for i := range snapshot.IncomeItems {
				income := snapshot.IncomeItems[i]
				if income.Status != models.IncomeItemPending {
					continue
				}

				m := scoreIncome(bank, income, config, scorer)
				if m.Score >= config.MinScore {
					matches = append(matches, m)
				}
			}
		}
	}

	// Highest score first. Exact ties are broken by the smaller date
	// distance, then by IDs to keep the output deterministic.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].DateDistance != matches[j].DateDistance {
			return matches[i].DateDistance < matches[j].DateDistance
		}
		if matches[i].BankTransaction.ID != matches[j].BankTransaction.ID {
			return matches[i].BankTransaction.ID.String() < matches[j].BankTransaction.ID.String()
		}
		return matches[i].MatchedID() < matches[j].MatchedID()
	})

	return matches
}

func scoreVendor(bank models.BankTransaction, vendor models.VendorTransaction, rules []models.MatchRule, config Config, scorer Scorer) Match {
	m := Match{
		BankTransaction:   bank,
		Type:              TypeVendor,
		VendorTransaction: &vendor,
	}

	m.AmountScore = amountScore(bank.Amount.Abs(), vendor.Amount, config)
	m.DateScore, m.DateDistance = dateScore(bank, vendor.DueDate, config)

	// A match rule hit makes the merchant name a certain match
	if ruleVendor, ok := ruleMatch(rules, bank.MerchantName); ok && ruleVendor == vendor.VendorID {
		m.NameScore = 1
	} else {
		m.NameScore = nameScore(bank, vendor.VendorName, scorer)
	}

	m.Score = composite(m)
	return m
}

func scoreIncome(bank models.BankTransaction, income models.IncomeItem, config Config, scorer Scorer) Match {
	m := Match{
		BankTransaction: bank,
		Type:            TypeIncome,
		IncomeItem:      &income,
	}

	paymentDate := income.PaymentDate
	m.AmountScore = amountScore(bank.Amount.Abs(), income.Amount, config)
	m.DateScore, m.DateDistance = dateScore(bank, &paymentDate, config)
	m.NameScore = nameScore(bank, income.Source, scorer)

	m.Score = composite(m)
	return m
}

func composite(m Match) float64 {
	// An amount outside the tolerance band disqualifies the candidate
	// entirely, regardless of how well name and date fit
	if m.AmountScore == 0 {
		return 0
	}

	return weightAmount*m.AmountScore + weightDate*m.DateScore + weightName*m.NameScore
}

// amountScore is 1 at an exact match and decays linearly to 0 at the edge
// of the tolerance band. Outside the band it is exactly 0, so unrelated
// amounts never contribute.
func amountScore(bankAmount, candidateAmount decimal.Decimal, config Config) float64 {
	tolerance := candidateAmount.Mul(config.AmountTolerancePercent)
	if tolerance.LessThan(config.AmountToleranceFixed) {
		tolerance = config.AmountToleranceFixed
	}

	diff := bankAmount.Sub(candidateAmount).Abs()
	if diff.GreaterThanOrEqual(tolerance) {
		return 0
	}

	ratio, _ := diff.Div(tolerance).Float64()
	return 1 - ratio
}

// dateScore decays linearly with the day distance between the bank
// transaction date and the candidate date. Candidates without a date get
// the neutral midpoint and an unknown distance.
func dateScore(bank models.BankTransaction, candidate *time.Time, config Config) (float64, int) {
	if candidate == nil || candidate.IsZero() {
		return neutralDateScore, math.MaxInt32
	}

	distance := dayDistance(bank.Date, *candidate)
	if distance >= config.DateToleranceDays {
		return 0, distance
	}

	return 1 - float64(distance)/float64(config.DateToleranceDays), distance
}

func nameScore(bank models.BankTransaction, candidateName string, scorer Scorer) float64 {
	name := bank.MerchantName
	if name == "" {
		name = bank.Description
	}

	return scorer.Score(name, candidateName)
}

// ruleMatch returns the vendor reference of the first rule whose glob
// pattern matches the merchant name. Rules are already priority sorted.
func ruleMatch(rules []models.MatchRule, merchantName string) (string, bool) {
	for _, rule := range rules {
		if glob.Glob(rule.Match, merchantName) {
			return rule.VendorID, true
		}
	}
	return "", false
}

func dayDistance(a, b time.Time) int {
	hours := math.Abs(a.Sub(b).Hours())
	return int(hours / 24)
}
