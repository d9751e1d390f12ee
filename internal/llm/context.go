package llm

import "context"

// purposeKey is unexported so only this package can write the label.
type purposeKey struct{}

// WithPurpose tags the context with the caller's reason for the request,
// such as "narrative" or "questiongen". The logging decorator reads the
// tag when it records the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reports the purpose tag on the context, or "unknown" when
// the caller never set one.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
