// Package paths locates the application-data directory.
//
// The backend owns exactly one directory on disk: the platform
// application-data directory for the application's identifier. This package
// answers where that directory is; it never creates it. Creation and
// containment checks belong to the sandbox package.
//
// # Platform Layout
//
//	linux, *bsd:  $XDG_DATA_HOME/<id>   (fallback ~/.local/share/<id>)
//	darwin, ios:  ~/Library/Application Support/<id>
//	windows:      %APPDATA%\<id>
//
// # Usage
//
//	locator := paths.Platform{Identifier: "com.deskshell.app"}
//	dir, err := locator.DataDir()
//	if errors.Is(err, paths.ErrUnavailable) {
//	    // no data directory on this platform
//	}
//
//	// Explicit override (APP_DATA_DIR)
//	dir, err = paths.Fixed("~/deskshell-data").DataDir()
package paths
