package services

// ServiceError is a comparable sentinel; callers match with errors.Is and the
// HTTP boundary maps each one to a status code. Messages are user-facing and
// therefore in Spanish, like the rest of the API surface.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

// Errors shared by every lifecycle operation.
const (
	// ErrInvalidID: the identifier is syntactically malformed (or nil).
	ErrInvalidID ServiceError = "identificador inválido"
	// ErrNotFound: a well-formed id that resolves to no record.
	ErrNotFound ServiceError = "registro no encontrado"
	// ErrUserNotFound: a referenced actor/subject id resolves to no active user.
	ErrUserNotFound ServiceError = "usuario referenciado no encontrado"
	// ErrSelfReference: the two referenced users of a record must differ.
	ErrSelfReference ServiceError = "los usuarios referenciados deben ser distintos"
	// ErrInvalidInput: a malformed or missing required field.
	ErrInvalidInput ServiceError = "datos de entrada inválidos"
)
