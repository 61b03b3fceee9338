package scenario

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

//go:embed data/*.yaml
var builtin embed.FS

// Info is the listing entry of a registered scenario.
type Info struct {
	Name        string
	Title       string
	Description string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

func init() {
	entries, err := builtin.ReadDir("data")
	if err != nil {
		panic(fmt.Sprintf("scenario: reading built-ins: %v", err))
	}
	for _, e := range entries {
		data, err := builtin.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("scenario: reading %s: %v", e.Name(), err))
		}
		sc, err := Parse(bytes.NewReader(data))
		if err != nil {
			panic(fmt.Sprintf("scenario: built-in %s: %v", e.Name(), err))
		}
		Register(sc)
	}
}

// Register adds a scenario under its name.
// Panics if the name is already taken.
func Register(sc Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[sc.Name]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", sc.Name))
	}
	scenarios[sc.Name] = sc
}

// List returns every registered scenario, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenarios))
	for _, sc := range scenarios {
		result = append(result, Info{Name: sc.Name, Title: sc.Title, Description: sc.Description})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Lookup returns a registered scenario, suggesting a near name on a miss.
func Lookup(name string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	if sc, ok := scenarios[name]; ok {
		return sc, nil
	}
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	if best, ok := catalog.Suggest(name, names); ok {
		return Scenario{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownScenario, name, best)
	}
	return Scenario{}, fmt.Errorf("%w %q", ErrUnknownScenario, name)
}

// Resolve accepts a registered name or a path to a scenario file.
func Resolve(ref string) (Scenario, error) {
	if sc, err := Lookup(ref); err == nil {
		return sc, nil
	} else if _, statErr := os.Stat(ref); statErr != nil {
		return Scenario{}, err
	}
	return LoadFile(ref)
}
