package log

import "context"

// WithDeliveryID attaches a webhook delivery id that every log line written with the
// returned context will carry.
func WithDeliveryID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, deliveryIDKey, id)
}

// DeliveryID returns the delivery id stored by WithDeliveryID, if any.
func DeliveryID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(deliveryIDKey).(string)
	return id
}
