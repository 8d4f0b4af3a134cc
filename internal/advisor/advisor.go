package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/types"
)

// ErrUnavailable covers both a missing credential and a failed call; the
// dashboard treats it as a dismissible message, never as lost data.
var ErrUnavailable = errors.New("could not retrieve AI insights: the service may be unavailable or no API key is configured")

type Advisor struct {
	apiKey string
	model  string
}

func New(apiKey, model string) *Advisor {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Advisor{apiKey: apiKey, model: model}
}

// Summarize renders the plain-text statistical summary of the opportunity
// set that gets embedded in the analyst prompt.
func Summarize(opps []types.OpportunityRecord) string {
	var totalValue, totalAdrm, totalUpside float64
	owners := map[string]struct{}{}
	statusCounts := map[string]int{}
	for _, opp := range opps {
		totalValue += opp.Total
		totalAdrm += opp.Adrm
		totalUpside += opp.Upside
		owners[opp.OppOwner] = struct{}{}
		status := opp.OppStatus
		if status == "" {
			status = "Unknown"
		}
		statusCounts[status]++
	}
	avg := 0.0
	if len(opps) > 0 {
		avg = totalValue / float64(len(opps))
	}

	statuses := make([]string, 0, len(statusCounts))
	for s := range statusCounts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", s, statusCounts[s]))
	}

	return fmt.Sprintf(`    - Total Opportunities: %d
    - Total Pipeline Value (Total): %s
    - Total ADRM Value: %s
    - Total Upside Value: %s
    - Average Opportunity Value: %s
    - Unique Opportunity Owners: %d
    - Opportunity Status Breakdown: %s`,
		len(opps), usd(totalValue), usd(totalAdrm), usd(totalUpside), usd(avg),
		len(owners), strings.Join(parts, ", "))
}

// BuildPrompt embeds the data summary in the fixed analyst prompt.
func BuildPrompt(opps []types.OpportunityRecord) string {
	return fmt.Sprintf(`You are a senior sales analyst providing insights for a management dashboard.
Analyze the following summary of a sales opportunity pipeline from a sheet called "ADRM".

Data Summary:
%s

Based on this summary, provide three sharp, actionable insights and one strategic recommendation for the sales leadership.
Focus on pipeline health, potential risks, regional performance, or opportunity owner trends.
Format your response as clean, readable markdown with headings for "Key Insights" and "Recommendation".`,
		Summarize(opps))
}

// Insights summarizes the opportunity set and asks Gemini for commentary.
// Transient failures are retried with exponential backoff; anything that
// still fails folds into ErrUnavailable.
func (a *Advisor) Insights(ctx context.Context, opps []types.OpportunityRecord) (string, error) {
	log := logger.New().WithField("component", "advisor")
	if a.apiKey == "" {
		log.Warn("no API key configured, skipping AI insights")
		return "", ErrUnavailable
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: a.apiKey})
	if err != nil {
		log.WithError(err).Error("genai client init failed")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	prompt := BuildPrompt(opps)
	var text string
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		resp, err := client.Models.GenerateContent(callCtx, a.model, genai.Text(prompt), nil)
		if err != nil {
			return err
		}
		text = resp.Text()
		if text == "" {
			return errors.New("empty model response")
		}
		return nil
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 45 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		log.WithError(err).Warn("AI insights request failed")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	log.WithField("model", a.model).Info("AI insights generated")
	return text, nil
}

// usd formats a value like $1,234,568 with no decimals.
func usd(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
