package analyzer

import "fmt"

// QueryCycleError is the fatal internal error raised when a memoized query
// re-enters itself before completing, i.e. computing the answer for a key
// requires the answer for the same key. Per spec §5, this core runs
// single-threaded and cooperatively; the one cycle the design anticipates
// (use-resolution against module scope) is broken at the API level by
// internalItems/nonUsedInternalItems being two distinct, separately cached
// entry points, never by retrying or waiting inside query itself.
type QueryCycleError struct {
	Key string
}

func (e *QueryCycleError) Error() string {
	return fmt.Sprintf("analyzer: query cycle detected for key %q", e.Key)
}

// query memoizes compute() under key in db's cache, running compute at most
// once per key. A re-entrant call with the same key while compute is still
// running panics with *QueryCycleError, since this package never expects
// one query's computation to depend on its own unfinished result.
func query[T any](db *Database, key string, compute func() T) T {
	if v, ok := db.cache[key]; ok {
		return v.(T)
	}
	if db.inFlight[key] {
		panic(&QueryCycleError{Key: key})
	}
	db.inFlight[key] = true
	result := compute()
	delete(db.inFlight, key)
	db.cache[key] = result
	return result
}

// cacheKey builds a cache key from a query name and its arguments. Callers
// pass interned IDs or other comparable small values; fmt.Sprint gives a
// stable, readable key without requiring every arg type to implement its
// own serialization.
func cacheKey(name string, args ...any) string {
	key := name
	for _, a := range args {
		key += fmt.Sprintf("/%v", a)
	}
	return key
}
