package cart

import "net/http"

// CookieStore is the cookie jar of one inbound request.
type CookieStore interface {
	Get(name string) (string, bool)
	Set(cookie *http.Cookie)
}

type httpCookies struct {
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

// HTTPCookies adapts a request/response pair. Cookies set during the request
// are visible to later Get calls on the same store.
func HTTPCookies(w http.ResponseWriter, r *http.Request) CookieStore {
	return &httpCookies{w: w, r: r, written: map[string]string{}}
}

func (c *httpCookies) Get(name string) (string, bool) {
	if value, ok := c.written[name]; ok {
		return value, value != ""
	}
	cookie, err := c.r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *httpCookies) Set(cookie *http.Cookie) {
	if cookie == nil {
		return
	}
	c.written[cookie.Name] = cookie.Value
	http.SetCookie(c.w, cookie)
}
