package sneakers

import (
	"fmt"

	"github.com/HPrieto/crypto-sneakers/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

//---------- helpers for handling responses --------

// DeliverOrError returns an abci response for DeliverTx, converting the
// error message if present, or using the successful DeliverResult.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns an abci response for CheckTx, converting the error
// message if present, or using the successful CheckResult.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

//---------- results and some wrappers --------

// DeliverResult captures any non-error abci result to make sure people use
// error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// Tags is the ordered event log of this delivery. Tendermint indexes
	// the transaction history with them. Transfer and Approval events of
	// the registry are reported here.
	Tags []common.KVPair
	// GasUsed is a currently unused field kept for abci compatibility.
	GasUsed int64
}

// ToABCI converts our internal type into an abci response.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult captures any non-error abci result to make sure people use
// error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to
	// perform.
	GasAllocated int64
	// GasPayment is the total fees for this tx (or other source of
	// payment).
	GasPayment int64
}

// ToABCI converts our internal type into an abci response.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxError converts any error into an abci.ResponseDeliverTx,
// preserving as much info as possible. When in debug mode the full error
// information is returned.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver tx: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// CheckTxError converts any error into an abci.ResponseCheckTx, preserving
// as much info as possible. When in debug mode the full error information
// is returned.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot check tx: %s", log)
	}
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
