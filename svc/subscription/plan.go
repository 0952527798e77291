package subscription

// Metric names used as limit keys. They mirror the usage counters; keys
// are plain strings so plan definitions can live in configuration files.
const (
	MetricApplications  = "applications"
	MetricAgentMessages = "agent_messages"
	MetricResumes       = "resumes"
)

// Plan describes a pricing tier and its monthly usage allowances. PriceID
// is the billing provider's price identifier and is what webhook events
// carry, so it must match the provider dashboard exactly.
type Plan struct {
	ID       string           `yaml:"id"`
	Tier     Tier             `yaml:"tier"`
	Name     string           `yaml:"name"`
	PriceID  string           `yaml:"price_id"` // empty for the free plan
	Limits   map[string]int64 `yaml:"limits"`   // -1 represents unlimited
	Price    Money            `yaml:"price"`
	Interval BillingInterval  `yaml:"interval"`
}

// Limit returns the allowance for a metric. Metrics a plan does not
// mention are unlimited rather than zero, so adding a new counter never
// locks existing paid users out.
func (p Plan) Limit(metric string) int64 {
	limit, ok := p.Limits[metric]
	if !ok {
		return Unlimited
	}
	return limit
}

// DefaultPlans returns the built-in catalog used when no plans file is
// configured.
func DefaultPlans() []Plan {
	return []Plan{
		{
			ID:   "free",
			Tier: TierFree,
			Name: "Free",
			Limits: map[string]int64{
				MetricApplications:  5,
				MetricAgentMessages: 10,
				MetricResumes:       3,
			},
			Interval: BillingIntervalNone,
		},
		{
			ID:      "pro_monthly",
			Tier:    TierPro,
			Name:    "Pro",
			PriceID: "pri_pro_monthly",
			Limits: map[string]int64{
				MetricApplications:  50,
				MetricAgentMessages: 200,
				MetricResumes:       20,
			},
			Price:    Money{Amount: 1900, Currency: "USD"},
			Interval: BillingIntervalMonthly,
		},
		{
			ID:      "elite_monthly",
			Tier:    TierElite,
			Name:    "Elite",
			PriceID: "pri_elite_monthly",
			Limits: map[string]int64{
				MetricApplications:  Unlimited,
				MetricAgentMessages: Unlimited,
				MetricResumes:       Unlimited,
			},
			Price:    Money{Amount: 4900, Currency: "USD"},
			Interval: BillingIntervalMonthly,
		},
	}
}
