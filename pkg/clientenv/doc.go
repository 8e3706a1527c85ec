// Package clientenv abstracts the visitor-facing platform the tracking SDK
// runs against. Instead of branching on the presence of browser globals, the
// tracker depends on the Environment interface and receives one of three
// implementations: Request (backed by an incoming *http.Request), Static
// (fixed values, handy in tests and non-HTTP embeddings), or Inert (empty
// values, the degenerate environment used during server-side rendering or
// background work where no visitor context exists).
//
// All accessors are best-effort: a signal that cannot be derived from the
// underlying source yields an empty string, never an error.
//
// # Usage
//
//	env := clientenv.NewRequest(r)
//	fmt.Println(env.Platform(), env.Language(), env.Path())
package clientenv
