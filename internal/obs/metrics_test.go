package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/metrics":                  "/metrics",
		"/projects/":                "/projects/",
		"/projects/01J0ABC":         "/projects/:id",
		"/projects/01J0ABC?full=1":  "/projects/:id",
		"/projects/01J0ABC/members": "/projects/01J0ABC/members",
		"/users/me":                 "/users/me",
		"/token":                    "/token",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
