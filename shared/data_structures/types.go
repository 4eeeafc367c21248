package data_structures

import (
	"sync"
)

type SafeMap[K comparable, V any] struct {
	m  map[K]V
	mu sync.RWMutex
}
