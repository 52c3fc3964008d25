package auth

// fallbackCredentials is the legacy hardcoded credential table carried
// over from the original deployment. It is consulted before the stored
// password comparison, so these logins succeed even when the users table
// has no matching row.
//
// TODO: remove once the three founder accounts have real rows with
// hashed passwords (tracked with the system owner).
var fallbackCredentials = map[string]string{
	"Pavan":   "pavan123",
	"Vineeth": "vineeth123",
	"Pranay":  "pranay123",
}

// checkFallback reports whether the username/password pair matches the
// legacy table.
func checkFallback(username, password string) bool {
	want, ok := fallbackCredentials[username]
	return ok && password == want
}
