package domain

// Result is the outcome of an operation. Status is the tag: when it is false
// Message always explains why.
type Result struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

// DataResult is a Result that carries a payload on success
type DataResult[T any] struct {
	Result
	Data T `json:"data,omitempty"`
}

// Success builds a successful Result with an optional message
func Success(message string) Result {
	return Result{Status: true, Message: message}
}

// Failure builds a failed Result
func Failure(message string) Result {
	if message == "" {
		message = MsgGeneric
	}
	return Result{Status: false, Message: message}
}

// Failed reports whether the result is a failure
func (r Result) Failed() bool { return !r.Status }

// SuccessData builds a successful DataResult
func SuccessData[T any](data T) DataResult[T] {
	return DataResult[T]{Result: Result{Status: true}, Data: data}
}

// SuccessDataMsg builds a successful DataResult with a message
func SuccessDataMsg[T any](data T, message string) DataResult[T] {
	return DataResult[T]{Result: Success(message), Data: data}
}

// FailureData builds a failed DataResult with no payload
func FailureData[T any](message string) DataResult[T] {
	return DataResult[T]{Result: Failure(message)}
}

// FailWith carries an existing failure into a DataResult of another type
func FailWith[T any](r Result) DataResult[T] {
	return FailureData[T](r.Message)
}
