// Package registry provides a global registry of puzzle variants.
// Variants register themselves in init() functions, allowing the CLI to
// list and select board sizes without hardcoded switches.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Variant describes a named board size.
type Variant struct {
	// ID is the identifier used on the command line (e.g., "15", "8").
	ID string

	// Title is a human-readable name for display.
	Title string

	Width  int
	Height int
}

// Tiles returns the number of numbered tiles on the board.
func (v Variant) Tiles() int {
	return v.Width*v.Height - 1
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Typically called from an init() function.
// Panics if a variant with the same ID is already registered or the size
// is not positive.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if v.Width <= 0 || v.Height <= 0 {
		panic(fmt.Sprintf("registry: variant %q has size %dx%d", v.ID, v.Width, v.Height))
	}
	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}

	variants[v.ID] = v
}

// List returns all registered variants ordered by tile count.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Tiles() != result[j].Tiles() {
			return result[i].Tiles() < result[j].Tiles()
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the variant registered under id.
// Returns an error if the ID is not registered.
func Lookup(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}

	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}

func square(side int, title string) Variant {
	return Variant{
		ID:     strconv.Itoa(side*side - 1),
		Title:  title,
		Width:  side,
		Height: side,
	}
}

func init() {
	Register(square(3, "Eight puzzle"))
	Register(square(4, "Fifteen puzzle"))
	Register(square(5, "Twenty-four puzzle"))
}
