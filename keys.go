package switchback

import "sort"

// A Key stashes values in a context.Context for the lifetime of an HTTP request.
type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by switchback.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// ResponseKey stashes the response being built for an HTTP request.
	ResponseKey Key = "ResponseKey"
)

// Key returns k so it can be used as a key in a map[string].
func (k Key) Key() string { return string(k) }

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}

// A ByKey sorts a []Key.
type ByKey []Key

var _ sort.Interface = ByKey{}

func (k ByKey) Len() int           { return len(k) }
func (k ByKey) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }
func (k ByKey) Less(i, j int) bool { return k[i] < k[j] }

// UniqueSort sorts k, dropping duplicates and zero-value keys.
func (k ByKey) UniqueSort() ByKey {
	seen := make(map[Key]struct{}, len(k))
	out := make(ByKey, 0, len(k))
	for _, key := range k {
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	sort.Sort(out)
	return out
}
