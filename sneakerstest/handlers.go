package sneakerstest

import sneakers "github.com/HPrieto/crypto-sneakers"

// Handler implements a mock handler that counts the calls and returns
// preconfigured results.
type Handler struct {
	checkCall   int
	CheckResult sneakers.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult sneakers.DeliverResult
	DeliverErr    error
}

var _ sneakers.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.CheckResult, error) {
	h.checkCall++
	return &h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.DeliverResult, error) {
	h.deliverCall++
	return &h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
