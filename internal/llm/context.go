package llm

import "context"

type purposeKey struct{}

// Unlabeled is recorded for requests made without WithPurpose.
const Unlabeled = "unlabeled"

// WithPurpose tags requests made with ctx, e.g. "sentence". The tag is
// stored on the llm_request event and used by `hanzi llm list --purpose`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return Unlabeled
}
