package interfaces

// IPaymentMetrics exposes the fire-and-forget counters reported by the
// pipeline and the mock endpoint. Implementations must never block or fail.

type IPaymentMetrics interface {
	IncrementGenerated()
	IncrementSaved()
}
