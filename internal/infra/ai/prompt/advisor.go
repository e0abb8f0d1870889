package prompt

import "fmt"

// GetSystemPrompt frames the model as an agronomy advisor with a fixed
// output contract.
func GetSystemPrompt() string {
	return `You are an agronomist advising smallholder maize farmers. You will be given the disease class detected on a leaf photo and the measured severity. Respond with short, practical guidance a farmer can act on this week: what the disease is, how it spreads, immediate treatment steps, and prevention for the next season. Plain text, no markdown, at most 200 words. If the leaf is healthy, say so and give one sentence of general care advice.`
}

// GetUserPrompt builds the per-analysis message.
func GetUserPrompt(prediction, severityLabel string, severityPct float64) string {
	if severityLabel == "" {
		return fmt.Sprintf("Detected class: %s. Severity: %.1f%% of leaf area affected.", prediction, severityPct)
	}
	return fmt.Sprintf("Detected class: %s. Severity: %.1f%% of leaf area affected (%s).", prediction, severityPct, severityLabel)
}
