// Package script runs a user-supplied Lua hook whenever the selection
// changes.
//
// A hook file defines a global function:
//
//	function on_change(selected, previous)
//	  return string.format("%d picked", #selected)
//	end
//
// Both arguments are arrays of item ids as strings. A string return value
// replaces the status label; nil keeps the default label.
//
// The state is sandboxed: only the base, table, string and math libraries
// are opened, file loading functions are removed, require only resolves
// those built-in modules, and print is routed to a Go callback. Each call
// runs under a deadline so a runaway hook cannot stall the event loop.
package script
