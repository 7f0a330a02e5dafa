package model

// Machine-readable load failure reasons, distinct from the human-readable
// message. Load failures are deterministic for given bytes; retrying
// without changing the input is meaningless.
const (
	ReasonBadMagic            = "bad_magic"
	ReasonVersionIncompatible = "version_incompatible"
	ReasonChecksumMismatch    = "checksum_mismatch"
	ReasonTruncated           = "truncated"
	ReasonWrongModelType      = "model_type_mismatch"
	ReasonMalformed           = "malformed_model"
)

// LoadError is fatal: a model failing to load is blocked from use.
type LoadError struct {
	LoadReason string
	Message    string
}

func (e *LoadError) Error() string {
	return "model load failed (" + e.LoadReason + "): " + e.Message
}

func (e *LoadError) Reason() string {
	return e.LoadReason
}

// ReasonOf extracts the machine-readable reason from an error, or "" for
// errors outside the load taxonomy.
func ReasonOf(err error) string {
	type reasoner interface {
		Reason() string
	}
	if r, ok := err.(reasoner); ok {
		return r.Reason()
	}
	return ""
}
