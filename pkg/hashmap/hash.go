package hashmap

import (
	"hash/maphash"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher returns the 32-bit hash code of a key.
// Codes are spread before use, so they only need to be consistent with ==.
type Hasher[K comparable] func(key K) uint32

var seed = maphash.MakeSeed()

// DefaultHasher hashes strings with xxhash and any other comparable key
// with hash/maphash. Nil keys hash to 0.
func DefaultHasher[K comparable]() Hasher[K] {
	nilable := canBeNil[K]()
	return func(key K) uint32 {
		if nilable && isNil(key) {
			return 0
		}
		if s, ok := any(key).(string); ok {
			return StringHasher(s)
		}
		return fold(maphash.Comparable(seed, key))
	}
}

// StringHasher is the xxhash based hasher used for string keys.
func StringHasher(s string) uint32 {
	return fold(xxhash.Sum64String(s))
}

func fold(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// spread folds high bits into low bits so that codes differing only in the
// upper bits still land in different buckets of a power-of-two table.
func spread(h uint32) uint32 {
	h ^= (h >> 20) ^ (h >> 12)
	return h ^ (h >> 7) ^ (h >> 4)
}

func indexFor(h uint32, length int) int {
	return int(spread(h) & uint32(length-1))
}

// canBeNil reports whether K has a nil value usable as a map key.
func canBeNil[K comparable]() bool {
	t := reflect.TypeFor[K]()
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func isNil[K comparable](key K) bool {
	v := any(key)
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
