/*
Package errors provides semantic error types for blobstream.

Every failure a stream can produce has a sentinel and a typed error, so callers can
branch with the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("not found")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrConfiguration = errors.New("invalid configuration")
	    ErrNotSupported  = errors.New("operation not supported")
	    ErrStoreFailure  = errors.New("store failure")
	    ErrTimeout       = errors.New("timeout")
	)

Usage:

	record, err := s.GetLatestRecord(ctx, op)
	if err != nil {
	    if errors.IsValidationError(err) {
	        // the operation used a field a blob container cannot represent
	        var verr *errors.ValidationError
	        stderrors.As(err, &verr)
	        log.Printf("bad field %s", verr.Field)
	    }
	    return err
	}
	if record == nil {
	    // absent record, not an error
	}

A missing record on GetLatestRecord is not an error: the stream returns a nil record.
*/
package errors
