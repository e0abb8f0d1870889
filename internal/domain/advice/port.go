package advice

import "context"

type Client interface {
	Advise(ctx context.Context, prediction, severityLabel string, severityPct float64) (string, error)
}
