package schlib

// MalformedContainerError reports a container that is missing a mandatory
// stream or storage, or whose header disagrees with its contents.
type MalformedContainerError struct {
	Reason string
}

func (e *MalformedContainerError) Error() string {
	return "malformed container: " + e.Reason
}
