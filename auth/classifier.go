package auth

import "net/http"

// RequiresAuth decides, from method and path alone, whether a request must
// carry a valid bearer token before reaching business logic. It is pure and
// total: no I/O, an answer for every input.
//
// Policy: the entire read surface is public, so GET never requires a token.
// Every mutating verb requires one, except /register and /login, which are
// POST but must stay public to bootstrap a session. Mutating paths outside
// the known route surface are denied rather than exempted.
func RequiresAuth(method, path string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return false
	}

	return path != "/register" && path != "/login"
}
