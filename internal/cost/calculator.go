// Package cost attributes a dollar cost to model calls.
package cost

// Rates holds per-provider pricing configuration.
type Rates struct {
	Gemini    map[string]ModelRate `yaml:"gemini" mapstructure:"gemini"`
	Anthropic map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
}

// ModelRate holds per-model token pricing (per million tokens). Thinking
// tokens are billed at the output rate.
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Call computes the cost of one model call. Unknown providers or models
// cost 0.
func (c *Calculator) Call(provider, model string, input, output, thinking int64) float64 {
	if c == nil {
		return 0
	}

	var table map[string]ModelRate
	switch provider {
	case "gemini":
		table = c.rates.Gemini
	case "anthropic":
		table = c.rates.Anthropic
	}

	rate, ok := table[model]
	if !ok {
		return 0
	}

	inCost := (float64(input) / 1e6) * rate.Input
	outCost := (float64(output+thinking) / 1e6) * rate.Output
	return inCost + outCost
}

// Merge overlays configured rates onto r. Configured models win.
func (r Rates) Merge(over Rates) Rates {
	out := Rates{
		Gemini:    make(map[string]ModelRate, len(r.Gemini)+len(over.Gemini)),
		Anthropic: make(map[string]ModelRate, len(r.Anthropic)+len(over.Anthropic)),
	}
	for k, v := range r.Gemini {
		out.Gemini[k] = v
	}
	for k, v := range over.Gemini {
		out.Gemini[k] = v
	}
	for k, v := range r.Anthropic {
		out.Anthropic[k] = v
	}
	for k, v := range over.Anthropic {
		out.Anthropic[k] = v
	}
	return out
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Gemini: map[string]ModelRate{
			"gemini-3-pro-preview": {Input: 2.00, Output: 12.00},
			"gemini-2.5-pro":       {Input: 1.25, Output: 10.00},
			"gemini-2.5-flash":     {Input: 0.30, Output: 2.50},
		},
		Anthropic: map[string]ModelRate{
			"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
			"claude-opus-4-6":            {Input: 15.00, Output: 75.00},
		},
	}
}
