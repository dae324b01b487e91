package enums

// FulfillmentOutcome labels how a warehouse recommendation was reached.
type FulfillmentOutcome string

const (
	FulfillmentOutcomeFeasible FulfillmentOutcome = "feasible"
	FulfillmentOutcomeFallback FulfillmentOutcome = "fallback"
	FulfillmentOutcomeFailed   FulfillmentOutcome = "failed"
)

// String implements fmt.Stringer.
func (o FulfillmentOutcome) String() string {
	return string(o)
}
