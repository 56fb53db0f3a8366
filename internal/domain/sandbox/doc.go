// Package sandbox confines front-end supplied paths to the application-data
// directory.
//
// Resolution runs in two phases. Syntactic checks come first and touch no
// filesystem: absolute or rooted paths, volume names and any ".." component
// are rejected outright, even when the normalized target would stay inside
// the root. Then the root is located (and created if missing), both root and
// candidate are canonicalized, and the canonical candidate must lie within the
// canonical root, compared segment by segment.
//
// A target that does not exist yet resolves to its canonical parent joined with
// the final segment, which lets writes create new files while still proving
// the parent is real and contained.
//
// Every failure is an *Error of one of three kinds:
//
//	KindOutsideSandbox   path escapes, or could escape, the root
//	KindRootUnavailable  the directory locator has no answer
//	KindIOFailure        the OS refused; the cause is wrapped
//
// Example:
//
//	resolver := sandbox.NewResolver(paths.Platform{Identifier: "com.deskshell.app"})
//	abs, err := resolver.Resolve("notes/session.md")
//	if errors.Is(err, sandbox.ErrOutsideSandbox) {
//	    // rejected
//	}
package sandbox
