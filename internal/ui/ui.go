// Package ui makes the UI-thread-affinity requirement explicit. Window
// creation, input posting, and app activation must all happen on the
// process's main OS thread; any call that touches them takes a Token so
// the requirement is visible in signatures instead of being an implicit
// rule.
package ui

import (
	"runtime"
	"sync"
)

// Token proves its holder runs on the UI execution context. It can only
// be obtained from Init.
type Token struct {
	valid bool
}

// Valid reports whether the token came from Init. The zero Token is
// invalid; callees may reject it.
func (t Token) Valid() bool { return t.valid }

var (
	initOnce sync.Once
	token    Token
)

// Init pins the calling goroutine to its OS thread and returns the UI
// token. Call it from main before anything else; subsequent calls return
// the same token without re-pinning.
func Init() Token {
	initOnce.Do(func() {
		runtime.LockOSThread()
		token = Token{valid: true}
	})
	return token
}
