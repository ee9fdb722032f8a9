package usecase

// Error values are small typed strings so the transport layer can map
// each class to a status code with errors.As.

type ErrBadRequest string

func (e ErrBadRequest) Error() string { return string(e) }

type ErrNotFound string

func (e ErrNotFound) Error() string { return string(e) + " not found" }

// ErrUnknownProduct is raised when a submitted product id is absent from
// the catalog response. It carries the offending id.
type ErrUnknownProduct string

func (e ErrUnknownProduct) Error() string { return "product " + string(e) + " not found in catalog" }

// ErrUpstream covers catalog RPC failures and timeouts. No order state
// exists when it is raised, so the caller may safely retry.
type ErrUpstream string

func (e ErrUpstream) Error() string { return "product service unavailable: " + string(e) }

type ErrStorage string

func (e ErrStorage) Error() string { return "storage failure: " + string(e) }
