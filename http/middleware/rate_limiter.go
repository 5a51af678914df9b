package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/xy-planning-network/switchback/http/resp"
	"golang.org/x/time/rate"
)

const (
	// visitorTTL is how long a Visitor is tracked after last being seen.
	visitorTTL = 60 * time.Minute

	visitorLimit rate.Limit = 5
	visitorBurst            = 20
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val map[string]Visitor
	sync.Mutex
}

func NewVisitors() *Visitors { return &Visitors{val: make(map[string]Visitor)} }

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
//
// Newly created visitors are limited to 5 requests every second with bursts of up to 20.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(visitorLimit, visitorBurst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len is the number of Visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler
// so long as the visitor has not exceeded its limit.
//
// Visitors exceeding their limit receive http.StatusTooManyRequests through d.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors, d *resp.Responder) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(GetIPAddress(r.Header)).Limiter.Allow() {
				tooMany(w, r, d)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}

func tooMany(w http.ResponseWriter, r *http.Request, d *resp.Responder) {
	msg := http.StatusText(http.StatusTooManyRequests)
	if d == nil {
		http.Error(w, msg, http.StatusTooManyRequests)
		return
	}

	err := d.Raw(w, r,
		resp.Code(http.StatusTooManyRequests),
		resp.ContentType("text/plain; charset=utf-8"),
		resp.ContentString(msg+"\n"),
		resp.Header("Retry-After", strconv.Itoa(1)),
	)
	if err != nil {
		http.Error(w, msg, http.StatusTooManyRequests)
	}
}
