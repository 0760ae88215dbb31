package sneaker

import (
	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
	"github.com/HPrieto/crypto-sneakers/x"
)

const (
	issueTokenCost    = 0
	transferTokenCost = 0
	approveTokenCost  = 0
)

// registryCondition represents the registry itself. Tokens sent to this
// address would be locked up forever, so it is rejected as a transfer
// destination.
var registryCondition = sneakers.NewCondition("sneakers", "registry", []byte("tokens"))

// RegistryAddress returns the address of the registry itself.
func RegistryAddress() sneakers.Address {
	return registryCondition.Address()
}

// Gate exposes the global circuit breaker maintained outside of this
// extension. When closed, no state changing operation is allowed.
type Gate interface {
	IsPaused(ctx sneakers.Context, db sneakers.ReadOnlyKVStore) bool
}

// AdminRole decides whether an address is allowed to mint new tokens. Role
// administration itself lives outside of this extension.
type AdminRole interface {
	HasAdminRole(ctx sneakers.Context, db sneakers.ReadOnlyKVStore, addr sneakers.Address) bool
}

// RegisterRoutes registers all handlers necessary for the token registry.
func RegisterRoutes(r sneakers.Registry, auth x.Authenticator, admin AdminRole, gate Gate) {
	control := NewController()
	r.Handle(IssueTokenMsg{}.Path(), &issueTokenHandler{auth: auth, admin: admin, gate: gate, control: control})
	r.Handle(TransferTokenMsg{}.Path(), &transferTokenHandler{auth: auth, gate: gate, control: control})
	r.Handle(TransferFromTokenMsg{}.Path(), &transferFromTokenHandler{auth: auth, gate: gate, control: control})
	r.Handle(ApproveTokenMsg{}.Path(), &approveTokenHandler{auth: auth, gate: gate, control: control})
}

// RegisterQuery registers token and balance queries.
func RegisterQuery(qr sneakers.QueryRouter) {
	NewTokenBucket().Register("sneakers", qr)
	NewBalanceBucket().Register("sneakerbalances", qr)
}

type issueTokenHandler struct {
	auth    x.Authenticator
	admin   AdminRole
	gate    Gate
	control *Controller
}

var _ sneakers.Handler = (*issueTokenHandler)(nil)

func (h *issueTokenHandler) Check(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &sneakers.CheckResult{GasAllocated: issueTokenCost}, nil
}

func (h *issueTokenHandler) Deliver(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	token := SneakerToken{
		Brand:          msg.Brand,
		Name:           msg.Name,
		Size:           msg.Size,
		StyleCode:      msg.StyleCode,
		Colorway:       msg.Colorway,
		RetailPrice:    msg.RetailPrice,
		ManufacturedAt: msg.ManufacturedAt,
		ReleasedAt:     msg.ReleasedAt,
		Ticker:         msg.Ticker,
	}
	id, tags, err := h.control.Issue(db, token, msg.Owner)
	if err != nil {
		return nil, err
	}
	return &sneakers.DeliverResult{Data: id, Tags: tags}, nil
}

func (h *issueTokenHandler) validate(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*IssueTokenMsg, error) {
	if h.gate.IsPaused(ctx, db) {
		return nil, errors.Wrap(ErrPaused, "cannot issue")
	}

	var msg IssueTokenMsg
	if err := sneakers.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "message must be signed")
	}
	if !h.admin.HasAdminRole(ctx, db, signer.Address()) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "minting requires an admin role")
	}
	return &msg, nil
}

type transferTokenHandler struct {
	auth    x.Authenticator
	gate    Gate
	control *Controller
}

var _ sneakers.Handler = (*transferTokenHandler)(nil)

func (h *transferTokenHandler) Check(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &sneakers.CheckResult{GasAllocated: transferTokenCost}, nil
}

func (h *transferTokenHandler) Deliver(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	tags, err := h.control.Move(db, owner, msg.To, msg.ID)
	if err != nil {
		return nil, err
	}
	return &sneakers.DeliverResult{Data: msg.ID, Tags: tags}, nil
}

func (h *transferTokenHandler) validate(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*TransferTokenMsg, sneakers.Address, error) {
	if h.gate.IsPaused(ctx, db) {
		return nil, nil, errors.Wrap(ErrPaused, "cannot transfer")
	}

	var msg TransferTokenMsg
	if err := sneakers.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	owner, err := h.control.OwnerOf(db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the owner can transfer")
	}
	return &msg, owner, nil
}

type transferFromTokenHandler struct {
	auth    x.Authenticator
	gate    Gate
	control *Controller
}

var _ sneakers.Handler = (*transferFromTokenHandler)(nil)

func (h *transferFromTokenHandler) Check(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &sneakers.CheckResult{GasAllocated: transferTokenCost}, nil
}

func (h *transferFromTokenHandler) Deliver(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	tags, err := h.control.Move(db, msg.From, msg.To, msg.ID)
	if err != nil {
		return nil, err
	}
	return &sneakers.DeliverResult{Data: msg.ID, Tags: tags}, nil
}

func (h *transferFromTokenHandler) validate(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*TransferFromTokenMsg, error) {
	if h.gate.IsPaused(ctx, db) {
		return nil, errors.Wrap(ErrPaused, "cannot transfer")
	}

	var msg TransferFromTokenMsg
	if err := sneakers.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	delegate, err := h.control.ApprovedFor(db, msg.ID)
	if err != nil {
		return nil, err
	}
	if len(delegate) == 0 || !h.auth.HasAddress(ctx, delegate) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no approval for this delegate")
	}

	// The source must be the current owner. A stale from argument means
	// the token changed hands since the approval was observed.
	owner, err := h.control.OwnerOf(db, msg.ID)
	if err != nil {
		return nil, err
	}
	if !owner.Equals(msg.From) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner", msg.From)
	}
	return &msg, nil
}

type approveTokenHandler struct {
	auth    x.Authenticator
	gate    Gate
	control *Controller
}

var _ sneakers.Handler = (*approveTokenHandler)(nil)

func (h *approveTokenHandler) Check(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &sneakers.CheckResult{GasAllocated: approveTokenCost}, nil
}

func (h *approveTokenHandler) Deliver(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*sneakers.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	tags, err := h.control.Approve(db, msg.ID, msg.Delegate)
	if err != nil {
		return nil, err
	}
	return &sneakers.DeliverResult{Data: msg.ID, Tags: tags}, nil
}

func (h *approveTokenHandler) validate(ctx sneakers.Context, db sneakers.KVStore, tx sneakers.Tx) (*ApproveTokenMsg, error) {
	if h.gate.IsPaused(ctx, db) {
		return nil, errors.Wrap(ErrPaused, "cannot approve")
	}

	var msg ApproveTokenMsg
	if err := sneakers.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	owner, err := h.control.OwnerOf(db, msg.ID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the owner can approve")
	}
	return &msg, nil
}

// validateDestination rejects destinations that would lock the token up:
// the null address and the registry itself.
func validateDestination(to sneakers.Address) error {
	if len(to) == 0 {
		return errors.Wrap(ErrInvalidDestination, "empty destination")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if to.Equals(RegistryAddress()) {
		return errors.Wrap(ErrInvalidDestination, "the registry cannot hold tokens")
	}
	return nil
}
